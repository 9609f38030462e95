package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/brandontheis/oio-sds/internal/attrs"
	"github.com/brandontheis/oio-sds/internal/client"
	"github.com/brandontheis/oio-sds/internal/render"
	"github.com/brandontheis/oio-sds/internal/xpath"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newContainerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "container",
		Short: "Container lifecycle commands",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		newContainerCreateCommand(),
		newContainerSetCommand(),
		newContainerUnsetCommand(),
		newContainerShowCommand(),
		newContainerListCommand(),
		newContainerTouchCommand(),
		newContainerDeleteCommand(),
		newContainerLocateCommand(),
		newContainerSaveCommand(),
	)
	return cmd
}

// attributeFlags registers the shared create/set option set. The historical
// short spellings stgpol and versioning stay accepted.
func attributeFlags(cmd *cobra.Command, properties *[]string, quota, maxVersions *int64, policy *string) {
	flags := cmd.Flags()
	flags.StringArrayVar(properties, "property", nil, "Property to add/update for the container(s), format key=value")
	flags.Int64Var(quota, "quota", 0, "Set the quota on the container, in bytes")
	flags.StringVar(policy, "storage-policy", "", "Set the storage policy of the container")
	flags.Int64Var(maxVersions, "max-versions", 0,
		"Set the versioning policy of the container: n<0 unlimited, n=0 disabled (no overwrite), n=1 suspended (overwrite allowed), n>1 at most n versions")
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "stgpol":
			name = "storage-policy"
		case "versioning":
			name = "max-versions"
		}
		return pflag.NormalizedName(name)
	})
}

// attributeUpdate builds the attribute update of a create/set invocation.
// Only options actually given on the command line enter the update.
func attributeUpdate(cmd *cobra.Command, properties []string, quota, maxVersions int64, policy string) (attrs.Update, error) {
	parsed, err := attrs.ParseProperties(properties)
	if err != nil {
		return attrs.Update{}, err
	}

	update := attrs.Update{Properties: parsed}
	flags := cmd.Flags()
	if flags.Changed("quota") {
		update.Quota = attrs.Int(quota)
	}
	if flags.Changed("storage-policy") {
		update.StoragePolicy = attrs.String(policy)
	}
	if flags.Changed("max-versions") {
		update.MaxVersions = attrs.Int(maxVersions)
	}
	return update, nil
}

func newContainerCreateCommand() *cobra.Command {
	var (
		properties  []string
		quota       int64
		maxVersions int64
		policy      string
	)

	cmd := &cobra.Command{
		Use:   "create <container>...",
		Short: "Create an object container",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := attributeUpdate(cmd, properties, quota, maxVersions, policy)
			if err != nil {
				return err
			}

			c, account, err := newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			table := render.NewTable(os.Stdout, "Name", "Created")
			if len(args) > 1 {
				results, err := c.ContainerCreateMany(ctx, account, args, update)
				if err != nil {
					return err
				}
				for _, result := range results {
					table.Row(result.Name, strconv.FormatBool(result.Created))
				}
			} else {
				created, err := c.ContainerCreate(ctx, account, args[0], update)
				if err != nil {
					return err
				}
				table.Row(args[0], strconv.FormatBool(created))
			}
			return table.Flush()
		},
	}
	attributeFlags(cmd, &properties, &quota, &maxVersions, &policy)
	return cmd
}

func newContainerSetCommand() *cobra.Command {
	var (
		properties  []string
		quota       int64
		maxVersions int64
		policy      string
		clear       bool
	)

	cmd := &cobra.Command{
		Use:   "set <container>",
		Short: "Set container properties, quota, storage policy or versioning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := attributeUpdate(cmd, properties, quota, maxVersions, policy)
			if err != nil {
				return err
			}

			c, account, err := newClient()
			if err != nil {
				return err
			}
			return c.ContainerSetProperties(cmd.Context(), account, args[0], update, clear)
		},
	}
	attributeFlags(cmd, &properties, &quota, &maxVersions, &policy)
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear previous properties")
	return cmd
}

func newContainerUnsetCommand() *cobra.Command {
	var (
		properties  []string
		quota       bool
		maxVersions bool
		policy      bool
	)

	cmd := &cobra.Command{
		Use:   "unset <container>",
		Short: "Unset container properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, account, err := newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			resets := attrs.Update{}
			if quota {
				resets.Quota = attrs.Reset()
			}
			if policy {
				resets.StoragePolicy = attrs.Reset()
			}
			if maxVersions {
				resets.MaxVersions = attrs.Reset()
			}

			// Property deletion and system resets are independent calls;
			// an empty input skips its call entirely. A failure in the
			// first does not undo nor prevent reporting of the other.
			if len(properties) > 0 {
				if err := c.ContainerDelProperties(ctx, account, args[0], properties); err != nil {
					return err
				}
			}
			if !resets.IsZero() {
				return c.ContainerSetProperties(ctx, account, args[0], resets, false)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&properties, "property", nil, "Property to remove from the container")
	flags.BoolVar(&quota, "quota", false, "Reset the quota of the container to the namespace default")
	flags.BoolVar(&policy, "storage-policy", false, "Reset the storage policy of the container to the namespace default")
	flags.BoolVar(&maxVersions, "max-versions", false, "Reset the versioning policy of the container to the namespace default")
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "stgpol":
			name = "storage-policy"
		case "versioning":
			name = "max-versions"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

func newContainerShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <container>",
		Short: "Display information about an object container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, account, err := newClient()
			if err != nil {
				return err
			}

			// get_properties is the call that returns system properties,
			// the plain show of the account service does not.
			doc, err := c.ContainerGetProperties(cmd.Context(), account, args[0])
			if err != nil {
				return err
			}
			return render.Pairs(os.Stdout, attrs.Describe(doc))
		},
	}
}

func newContainerListCommand() *cobra.Command {
	var (
		opts        client.ListOptions
		fullListing bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, account, err := newClient()
			if err != nil {
				return err
			}

			pager := client.NewContainerPager(cmd.Context(), c, account, opts, fullListing)
			table := render.NewTable(os.Stdout, "Name", "Bytes", "Count")
			for pager.Next() {
				entry := pager.Entry()
				table.Row(entry.Name, strconv.FormatInt(entry.Bytes, 10), strconv.FormatInt(entry.Objects, 10))
			}
			if err := pager.Err(); err != nil {
				return err
			}
			return table.Flush()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Prefix, "prefix", "", "Filter the listing with a name prefix")
	flags.StringVar(&opts.Delimiter, "delimiter", "", "Group names on the first occurrence of the delimiter")
	flags.StringVar(&opts.Marker, "marker", "", "Marker for paging")
	flags.StringVar(&opts.EndMarker, "end-marker", "", "End marker for paging")
	flags.Int64Var(&opts.Limit, "limit", 0, "Limit the number of containers returned")
	flags.BoolVar(&fullListing, "no-paging", false, "List all containers without paging")
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "full" {
			name = "no-paging"
		}
		return pflag.NormalizedName(name)
	})
	return cmd
}

func newContainerTouchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "touch <container>...",
		Short: "Touch an object container, triggers asynchronous treatments on it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, account, err := newClient()
			if err != nil {
				return err
			}

			for _, reference := range args {
				if err := c.ContainerTouch(cmd.Context(), account, reference); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newContainerDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <container>...",
		Short: "Delete an object container",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, account, err := newClient()
			if err != nil {
				return err
			}

			for _, reference := range args {
				if err := c.ContainerDelete(cmd.Context(), account, reference); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newContainerLocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <container>",
		Short: "Locate the services in charge of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, account, err := newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			doc, err := c.ContainerGetProperties(ctx, account, args[0])
			if err != nil {
				return err
			}
			directory, err := c.List(ctx, account, args[0])
			if err != nil {
				return err
			}
			return render.Pairs(os.Stdout, attrs.Locate(doc, directory))
		},
	}
}

func newContainerSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <container>",
		Short: "Save all objects of a container locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, account, err := newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			objects, err := c.ObjectList(ctx, account, args[0])
			if err != nil {
				return err
			}

			for _, object := range objects {
				if err := saveObject(ctx, c, account, args[0], object.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// saveObject downloads one object into the working directory, mirroring the
// object name as a relative path. Existing files are overwritten.
func saveObject(ctx context.Context, c *client.Client, account, reference, name string) error {
	local, err := xpath.Local(name)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(local); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "could not create directory %s", dir)
		}
	}

	rc, err := c.ObjectFetch(ctx, account, reference, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(local)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", local)
	}
	defer f.Close()

	_, err = io.Copy(f, rc)
	return errors.Wrapf(err, "could not save %s", local)
}
