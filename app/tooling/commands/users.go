package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alisideas/bookshare/core/repositories/userrepo"
	"github.com/alisideas/bookshare/sdk/validation"
)

func newUserCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var name, role string
	add := &cobra.Command{
		Use:   "add <email>",
		Short: "Create a user with a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, fmt.Sprintf("Enter password for %s: ", args[0]))
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}

			client, err := env.Client()
			if err != nil {
				return err
			}

			input := userrepo.CreateUser{
				Email: validation.Ptr(args[0]),
				Name:  validation.StringPtrIfNotEmpty(name),
				Role:  validation.StringPtrIfNotEmpty(role),
			}
			user, err := client.Users.CreateWithPassword(cmd.Context(), input, password)
			if err != nil {
				return err
			}
			user.Password = nil
			return writeJSON(cmd.OutOrStdout(), user)
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&role, "role", "", "role, defaults to "+userrepo.DefaultRole)

	cmd.AddCommand(add)
	return cmd
}

// readPassword reads a masked password from a terminal, or one line from
// any other input.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
