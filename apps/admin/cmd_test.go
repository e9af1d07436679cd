package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/braydenwhite-blip/YPP-Portal-sub006/core/user"
	dummydb "github.com/braydenwhite-blip/YPP-Portal-sub006/storage/database/dummy"
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	return &commandLine{
		usrRepo: dummydb.NewUserRepository(db),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func runCliTests(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()

	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else if tt.wantErrStr != "" {
				if assert.Error(t, err) {
					assert.EqualError(t, err, tt.wantErrStr)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	runCliTests(t, cli, tests)
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("LeSecret#69"), nil }

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing email", args: []string{"adduser", "-username", "awesome"}, wantErr: errHelp},
		{name: "ok", args: []string{"adduser", "-username", "awesome", "-email", "awesome@portal.org"}},
		{name: "ok: admin", args: []string{"adduser", "-username", "boss01", "-email", "boss@portal.org", "-admin"}},
		{name: "ok: existing user updated", args: []string{"adduser", "-username", "awesome", "-email", "awesome@portal.org", "-admin"}},
	}
	runCliTests(t, cli, tests)

	ctx := context.Background()

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, "boss01")
	assert.NoError(t, err)
	assert.Equal(t, []string{user.RoleAdminOwner}, usr.Roles)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("LeSecret#69"))

	usr, err = cli.usrRepo.GetUserByUsernameOrEmail(ctx, "awesome")
	assert.NoError(t, err)
	assert.Equal(t, []string{user.RoleAdminOwner}, usr.Roles)
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("NewSecret#42"), nil }

	_, err := cli.usrRepo.CreateUser(context.Background(), newTestUser(t, "forgetful", "forgetful@portal.org"))
	assert.NoError(t, err)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "unknown user", args: []string{"resetpassword", "-username", "ghost"}, wantErrStr: user.ErrNotFound.Error()},
		{name: "ok: by username", args: []string{"resetpassword", "-username", "forgetful"}},
		{name: "ok: by email", args: []string{"resetpassword", "-username", "forgetful@portal.org"}},
	}
	runCliTests(t, cli, tests)

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(context.Background(), "forgetful")
	assert.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("NewSecret#42"))
}

func newTestUser(t *testing.T, uname, email string) user.User {
	t.Helper()

	usr := user.User{
		ID:       uname + "-id",
		Name:     uname,
		Username: uname,
		Email:    email,
		IsActive: true,
	}
	if err := usr.SetPassword("OldSecret#13"); err != nil {
		t.Fatalf("setting password: %v", err)
	}
	return usr
}
