package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/clinicdesk/clinicdesk/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login    commands.LoginCmd    `cmd:"" help:"Log in to the clinic API"`
		Logout   commands.LogoutCmd   `cmd:"" help:"Log out of one role or all roles"`
		Register commands.RegisterCmd `cmd:"" help:"Register a new account"`
		Whoami   commands.WhoamiCmd   `cmd:"" help:"Show the current identity"`
		Sessions commands.SessionsCmd `cmd:"" help:"List resident sessions"`
		Admin    commands.AdminCmd    `cmd:"" help:"Admin dashboard commands"`
		Doctor   commands.DoctorCmd   `cmd:"" help:"Doctor dashboard commands"`
		Patient  commands.PatientCmd  `cmd:"" help:"Patient dashboard commands"`
		Debug    bool                 `help:"Enable debug mode."`
		Version  kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
