package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/app"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/spf13/cobra"
)

// KeysCommandHandler encapsulates logic for inspecting the key registry via CLI.
type KeysCommandHandler struct{}

func (commandHandler *KeysCommandHandler) metadataService(env *commandEnv) (keys.KeyMetadataService, error) {
	repo, err := env.keyMetaRepository()
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, fmt.Errorf("no key registry configured: set database.type and database.dsn")
	}
	return app.NewKeyMetadataService(repo, env.logger)
}

// ListKeysCmd prints the key metadata records matching the query flags
func (commandHandler *KeysCommandHandler) ListKeysCmd(cmd *cobra.Command, _ []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	query, err := keyMetaQuery(cmd)
	if err != nil {
		return err
	}

	service, err := commandHandler.metadataService(env)
	if err != nil {
		return err
	}

	keyMetas, err := service.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tKEY PAIR\tTYPE\tIDENTITY\tBITS\tCREATED\tPATH")
	for _, k := range keyMetas {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			k.ID, k.KeyPairID, k.Type, k.Identity, k.ModulusBits, k.DateTimeCreated.Format(time.RFC3339), k.Path)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write key listing: %w", err)
	}
	return nil
}

// ShowKeyCmd prints a single key metadata record
func (commandHandler *KeysCommandHandler) ShowKeyCmd(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	service, err := commandHandler.metadataService(env)
	if err != nil {
		return err
	}

	k, err := service.GetByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "ID\t%s\n", k.ID)
	_, _ = fmt.Fprintf(w, "KEY PAIR\t%s\n", k.KeyPairID)
	_, _ = fmt.Fprintf(w, "TYPE\t%s\n", k.Type)
	_, _ = fmt.Fprintf(w, "IDENTITY\t%s\n", k.Identity)
	_, _ = fmt.Fprintf(w, "BITS\t%d\n", k.ModulusBits)
	_, _ = fmt.Fprintf(w, "ITERATIONS\t%d\n", k.Iterations)
	_, _ = fmt.Fprintf(w, "FINGERPRINT\t%s\n", k.Fingerprint)
	_, _ = fmt.Fprintf(w, "CREATED\t%s\n", k.DateTimeCreated.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "PATH\t%s\n", k.Path)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write key record: %w", err)
	}
	return nil
}

// DeleteKeysCmd removes key metadata records by ID. Key files are left on disk.
func (commandHandler *KeysCommandHandler) DeleteKeysCmd(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	service, err := commandHandler.metadataService(env)
	if err != nil {
		return err
	}

	for _, keyID := range args {
		if err := service.DeleteByID(cmd.Context(), keyID); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", keyID)
	}
	return nil
}

func keyMetaQuery(cmd *cobra.Command) (*keys.KeyMetaQuery, error) {
	flags := cmd.Flags()
	query := keys.NewKeyMetaQuery()

	var err error
	if query.Identity, err = flags.GetString("identity"); err != nil {
		return nil, fmt.Errorf("invalid identity flag: %w", err)
	}
	if query.Type, err = flags.GetString("type"); err != nil {
		return nil, fmt.Errorf("invalid type flag: %w", err)
	}
	if query.KeyPairID, err = flags.GetString("key-pair-id"); err != nil {
		return nil, fmt.Errorf("invalid key-pair-id flag: %w", err)
	}
	if query.Limit, err = flags.GetInt("limit"); err != nil {
		return nil, fmt.Errorf("invalid limit flag: %w", err)
	}
	if query.Offset, err = flags.GetInt("offset"); err != nil {
		return nil, fmt.Errorf("invalid offset flag: %w", err)
	}
	if query.SortBy, err = flags.GetString("sort-by"); err != nil {
		return nil, fmt.Errorf("invalid sort-by flag: %w", err)
	}
	if query.SortOrder, err = flags.GetString("sort-order"); err != nil {
		return nil, fmt.Errorf("invalid sort-order flag: %w", err)
	}
	return query, nil
}

// InitKeysCommands registers the key registry commands with the root command.
func InitKeysCommands(rootCmd *cobra.Command) error {
	handler := &KeysCommandHandler{}
	defaults := keys.NewKeyMetaQuery()

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "Inspect the key registry",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded key files",
		Args:  cobra.NoArgs,
		RunE:  handler.ListKeysCmd,
	}
	listCmd.Flags().String("identity", "", "Only keys of this identity")
	listCmd.Flags().String("type", "", "Only keys of this type (public or private)")
	listCmd.Flags().String("key-pair-id", "", "Only keys of this key pair")
	listCmd.Flags().Int("limit", defaults.Limit, "Maximum number of records")
	listCmd.Flags().Int("offset", defaults.Offset, "Number of records to skip")
	listCmd.Flags().String("sort-by", defaults.SortBy, "Sort column (date_time_created, modulus_bits or identity)")
	listCmd.Flags().String("sort-order", defaults.SortOrder, "Sort order (asc or desc)")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Remove key metadata records; key files are kept",
		Args:  cobra.MinimumNArgs(1),
		RunE:  handler.DeleteKeysCmd,
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one key metadata record",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.ShowKeyCmd,
	}

	keysCmd.AddCommand(listCmd, showCmd, deleteCmd)
	rootCmd.AddCommand(keysCmd)

	return nil
}
