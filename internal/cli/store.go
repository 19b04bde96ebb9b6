package cli

import (
	"context"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/sentree/pkg/errors"
	sio "github.com/matzehuels/sentree/pkg/io"
	"github.com/matzehuels/sentree/pkg/store"
)

// storeCommand creates the store command group.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep documents in the local or redis store",
		Long: `Store keeps annotation documents under short keys. The file backend writes
to $XDG_CACHE_HOME/sentree/documents; the redis backend shares documents
between machines.`,
	}

	cmd.PersistentFlags().StringVar(&c.storeBackend, "store", store.BackendFile, "store backend: file or redis")
	cmd.PersistentFlags().StringVar(&c.redisAddr, "redis-addr", defaultRedisAddr, "redis server address (host:port)")

	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	return cmd
}

// withStore validates key, opens the configured store and runs fn.
func (c *CLI) withStore(cmd *cobra.Command, key string, fn func(ctx context.Context, docs *store.Documents) error) error {
	if err := serrors.ValidateKey(key); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
	defer cancel()

	docs, closeFn, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, docs)
}

func (c *CLI) storePutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> <document>",
		Short: "Store a document under key",
		Args:  cobra.ExactArgs(2),
		RunE: c.runE(func(cmd *cobra.Command, args []string) error {
			key, path := args[0], args[1]
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}
			if _, err := sio.DeserializeStrict(doc); err != nil {
				return err
			}
			return c.withStore(cmd, key, func(ctx context.Context, docs *store.Documents) error {
				if err := docs.Put(ctx, key, doc); err != nil {
					return err
				}
				printSuccess(c.Out, "Stored %s", key)
				printStats(c.Out, len(doc), doc.WordCount())
				return nil
			})
		}),
	}
}

func (c *CLI) storeGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [document]",
		Short: "Fetch a stored document, printing JSON when no file is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: c.runE(func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return c.withStore(cmd, key, func(ctx context.Context, docs *store.Documents) error {
				doc, err := docs.Get(ctx, key)
				if err != nil {
					return err
				}
				if len(args) == 1 {
					return sio.WriteJSON(doc, c.Out)
				}
				if err := serrors.ValidatePath(args[1]); err != nil {
					return err
				}
				if err := sio.WriteFile(doc, args[1]); err != nil {
					return err
				}
				printSuccess(c.Out, "Fetched %s", key)
				printFile(c.Out, args[1])
				return nil
			})
		}),
	}
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: c.runE(func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return c.withStore(cmd, key, func(ctx context.Context, docs *store.Documents) error {
				if err := docs.Delete(ctx, key); err != nil {
					return err
				}
				printInfo(c.Out, "Deleted %s", key)
				return nil
			})
		}),
	}
}
