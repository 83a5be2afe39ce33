package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/fabricsight/fabricsight/pkg/credstore"
)

func credsCmd() *cli.Command {
	return &cli.Command{
		Name:  "creds",
		Usage: "Manage the encrypted credential store",
		Description: `Store domain passwords outside the run configuration. Domain
entries reference stored credentials via passwordRef:

  domains:
    - address: ucs-01.lab
      username: admin
      passwordRef: ucs-lab-admin

The store passphrase is read from ` + passphraseEnvVar + `. Secrets are
read from stdin so they never appear in shell history:

  fabricsight creds set ucs-lab-admin < secret.txt`,
		Flags: []cli.Flag{credStoreFlag},
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Store a credential under the given reference",
				ArgsUsage: "REF",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					ref := cmd.Args().First()
					if ref == "" {
						return fmt.Errorf("credential reference required")
					}

					secret, err := readSecret(os.Stdin)
					if err != nil {
						return err
					}
					return store.Put(ref, secret)
				},
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List stored credential references",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					refs, err := store.Refs()
					if err != nil {
						return err
					}
					sort.Strings(refs)
					for _, ref := range refs {
						fmt.Fprintln(cmd.Root().Writer, ref)
					}
					return nil
				},
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a stored credential",
				ArgsUsage: "REF",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, err := openStore(cmd)
					if err != nil {
						return err
					}
					ref := cmd.Args().First()
					if ref == "" {
						return fmt.Errorf("credential reference required")
					}
					return store.Delete(ref)
				},
			},
		},
	}
}

func openStore(cmd *cli.Command) (*credstore.Store, error) {
	passphrase := os.Getenv(passphraseEnvVar)
	if passphrase == "" {
		return nil, fmt.Errorf("%s is not set", passphraseEnvVar)
	}

	path := credStorePath(cmd.String("cred-store"))
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return credstore.Open(path, []byte(passphrase)), nil
}

// readSecret reads one secret from r: the first line, trimmed. Trailing
// newlines from here-docs and echo pipes are not part of the secret.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading secret from stdin: %w", err)
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", fmt.Errorf("empty secret")
	}
	return secret, nil
}
