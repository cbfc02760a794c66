package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/solr"
)

func (a *app) coreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "core",
		Short: "Administer the cores of the engine",
		Long: `Core administration through the admin endpoint. The endpoint is
solr.admin_url when set, otherwise derived from the core URL.

Examples:
  solrctl core status
  solrctl core create books --instance-dir /var/solr/books
  solrctl core swap books books_next`,
	}

	run := func(call func(cmd *cobra.Command, admin *solr.CoreAdmin, args []string) ([]byte, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			body, err := call(cmd, a.client.CoreAdmin(), args)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		}
	}

	status := &cobra.Command{
		Use:   "status [CORE]",
		Short: "Show the status of one core or all cores",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(cmd *cobra.Command, admin *solr.CoreAdmin, args []string) ([]byte, error) {
			core := ""
			if len(args) == 1 {
				core = args[0]
			}
			return admin.Status(cmd.Context(), core)
		}),
	}

	var createOpts solr.CreateCoreOptions
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a core",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, admin *solr.CoreAdmin, args []string) ([]byte, error) {
			return admin.Create(cmd.Context(), args[0], &createOpts)
		}),
	}
	create.Flags().StringVar(&createOpts.InstanceDir, "instance-dir", "", "instance directory (default: the core name)")
	create.Flags().StringVar(&createOpts.Config, "core-config", "", "config file name (default: "+solr.DefaultCoreConfig+")")
	create.Flags().StringVar(&createOpts.Schema, "schema", "", "schema file name (default: "+solr.DefaultCoreSchema+")")

	reload := &cobra.Command{
		Use:   "reload CORE",
		Short: "Reload a core's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, admin *solr.CoreAdmin, args []string) ([]byte, error) {
			return admin.Reload(cmd.Context(), args[0])
		}),
	}

	rename := &cobra.Command{
		Use:   "rename CORE NEW_NAME",
		Short: "Rename a core",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, admin *solr.CoreAdmin, args []string) ([]byte, error) {
			return admin.Rename(cmd.Context(), args[0], args[1])
		}),
	}

	swap := &cobra.Command{
		Use:   "swap CORE OTHER",
		Short: "Swap the names of two cores",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, admin *solr.CoreAdmin, args []string) ([]byte, error) {
			return admin.Swap(cmd.Context(), args[0], args[1])
		}),
	}

	unload := &cobra.Command{
		Use:   "unload CORE",
		Short: "Remove a core from the running engine",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, admin *solr.CoreAdmin, args []string) ([]byte, error) {
			return admin.Unload(cmd.Context(), args[0])
		}),
	}

	cmd.AddCommand(status, create, reload, rename, swap, unload)
	return cmd
}
