// Command contacts is the terminal client for the contact API. The plain
// subcommands cover scripted use; `contacts tui` starts the interactive
// interface.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/KENZY004/contact-management/internal/config"
	"github.com/KENZY004/contact-management/internal/model"
	"github.com/KENZY004/contact-management/internal/store"
	"github.com/KENZY004/contact-management/internal/tui"
	"github.com/KENZY004/contact-management/internal/view"
	"github.com/KENZY004/contact-management/pkg/client"
)

var (
	serverURL string

	query    string
	sortKey  string
	sortDesc bool

	fieldFlags model.Fields
)

func main() {
	defaultServer := "http://localhost:5000"
	if cfg, err := config.Load(); err == nil {
		defaultServer = cfg.ServerURL
	}

	root := &cobra.Command{
		Use:           "contacts",
		Short:         "Manage contacts through the contact API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "base URL of the contact API")

	root.AddCommand(listCmd(), addCmd(), updateCmd(), deleteCmd(), exportCmd(), tuiCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadedStore fetches the full contact list into a fresh store.
func loadedStore(ctx context.Context) (*store.Store, error) {
	s := store.New(client.New(serverURL))
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// projectionFromFlags builds the filter/sort state from the list flags.
func projectionFromFlags() (view.Projection, error) {
	projection := view.DefaultProjection()
	projection.Query = query
	switch sortKey {
	case "name":
		projection.Key = view.SortByName
	case "email":
		projection.Key = view.SortByEmail
	case "date":
		projection.Key = view.SortByDate
	default:
		return view.Projection{}, fmt.Errorf("unknown sort key %q (want name, email, or date)", sortKey)
	}
	if sortDesc {
		projection.Order = view.SortDescending
	} else {
		projection.Order = view.SortAscending
	}
	return projection, nil
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&query, "query", "", "substring filter over name, email, phone, and message")
	cmd.Flags().StringVar(&sortKey, "sort", "date", "sort key: name, email, or date")
	cmd.Flags().BoolVar(&sortDesc, "desc", true, "sort descending")
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fieldFlags.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&fieldFlags.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&fieldFlags.Phone, "phone", "", "10-digit phone number")
	cmd.Flags().StringVar(&fieldFlags.Message, "message", "", "optional message")
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			projection, err := projectionFromFlags()
			if err != nil {
				return err
			}
			s, err := loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			contacts := projection.Apply(s.All())
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tEMAIL\tPHONE\tADDED")
			for _, contact := range contacts {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					contact.ID, contact.Name, contact.Email, contact.Phone,
					contact.CreatedAt.Format("2006-01-02 15:04"))
			}
			return writer.Flush()
		},
	}
	addListFlags(cmd)
	return cmd
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.New(client.New(serverURL))
			contact, err := s.Add(cmd.Context(), fieldFlags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", contact.Name, contact.ID)
			return nil
		},
	}
	addFieldFlags(cmd)
	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.New(client.New(serverURL))
			contact, err := s.Update(cmd.Context(), args[0], fieldFlags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", contact.Name, contact.ID)
			return nil
		},
	}
	addFieldFlags(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.New(client.New(serverURL))
			contact, err := s.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", contact.Name, contact.ID)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current view to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			projection, err := projectionFromFlags()
			if err != nil {
				return err
			}
			s, err := loadedStore(cmd.Context())
			if err != nil {
				return err
			}
			path, err := view.Export(projection.Apply(s.All()), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	addListFlags(cmd)
	cmd.Flags().StringVar(&dir, "dir", ".", "directory the CSV file is written into")
	return cmd
}

func tuiCmd() *cobra.Command {
	var exportDir string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.New(client.New(serverURL))
			program := tea.NewProgram(tui.New(s, exportDir), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory exports are written into")
	return cmd
}
