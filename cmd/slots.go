package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"bitfolio/internal/repo"

	"github.com/google/subcommands"
)

type slotsCmd struct {
	delete string
}

func (*slotsCmd) Name() string     { return "slots" }
func (*slotsCmd) Synopsis() string { return "list or delete saved portfolios" }
func (*slotsCmd) Usage() string {
	return `bitfolio slots [-delete <key>]

  Lists the portfolio slots stored in the database. The slot named by SLOT_KEY
  is marked with '*'. With -delete the named slot is removed.
`
}

func (p *slotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.delete, "delete", "", "Slot key to delete.")
}

func (p *slotsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx, os.Stderr)
	if err != nil {
		return exitStatus(err)
	}
	defer a.Close()

	if p.delete != "" {
		if err := deleteSlot(ctx, a.repo, os.Stdout, p.delete, a.cfg.SlotKey); err != nil {
			return exitStatus(err)
		}
		return subcommands.ExitSuccess
	}

	if err := listSlots(ctx, a.repo, os.Stdout, a.cfg.SlotKey); err != nil {
		return exitStatus(err)
	}
	return subcommands.ExitSuccess
}

func listSlots(ctx context.Context, r *repo.Repository, w io.Writer, active string) error {
	keys, err := r.ListSettingKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "No saved portfolios.")
		return nil
	}
	for _, key := range keys {
		marker := " "
		if key == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, key)
	}
	return nil
}

func deleteSlot(ctx context.Context, r *repo.Repository, w io.Writer, key, active string) error {
	if err := r.DeleteSetting(ctx, key); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted %s.\n", key)
	if key == active {
		fmt.Fprintln(w, "The active portfolio starts fresh on the next command.")
	}
	return nil
}
