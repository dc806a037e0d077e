package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-approval"
	"github.com/goliatone/go-approval/commands"
	approvalcmd "github.com/goliatone/go-approval/internal/commands/approvals"
	"github.com/goliatone/go-approval/pkg/activity"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

type post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID       int64      `bun:",pk,autoincrement"`
	Title    string     `bun:"title,notnull"`
	StatusID *uuid.UUID `bun:"approval_status_id,type:uuid"`
}

func (p *post) ApprovalSubjectID() string         { return strconv.FormatInt(p.ID, 10) }
func (p *post) ApprovalStatusID() *uuid.UUID      { return p.StatusID }
func (p *post) SetApprovalStatusID(id *uuid.UUID) { p.StatusID = id }

type options struct {
	dsn      string
	logLevel string
	logger   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "approval-example",
		Short:         "Demonstrates approval workflows over SQLite",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "file:approval-example?mode=memory&cache=shared&_foreign_keys=on", "sqlite data source name")
	root.PersistentFlags().StringVar(&opts.logger, "logger", "", "logging provider (console, gologger); empty disables logging")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "logging level")

	root.AddCommand(&cobra.Command{
		Use:   "statuses",
		Short: "List the status catalog as selectable names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatuses(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	})
	return root
}

func openModule(ctx context.Context, opts *options, extra ...approval.Option) (*approval.Module, *bun.DB, error) {
	cfg := approval.DefaultConfig()
	cfg.Features.Commands = true
	cfg.Features.Activity = true
	cfg.Activity.Enabled = true
	if provider := strings.TrimSpace(opts.logger); provider != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = provider
		cfg.Logging.Level = opts.logLevel
	}

	sqlDB, err := sql.Open("sqlite3", opts.dsn)
	if err != nil {
		return nil, nil, err
	}
	db, err := approval.OpenDB(sqlDB, cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	module, err := approval.New(cfg, append([]approval.Option{approval.WithBunDB(db)}, extra...)...)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if _, err := module.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := module.Bootstrap(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return module, db, nil
}

func runStatuses(ctx context.Context, out io.Writer, opts *options) error {
	module, db, err := openModule(ctx, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	names, err := module.Statuses().SelectableNames(ctx)
	if err != nil {
		return err
	}
	for i, name := range names {
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(out, "%d. %s\n", i, name)
	}
	return nil
}

func runDemo(ctx context.Context, out io.Writer, opts *options) error {
	events := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		fmt.Fprintf(out, "activity: %s %s:%s -> %v\n", event.Verb, event.ObjectType, event.ObjectID, event.Metadata["status"])
		return nil
	})

	module, db, err := openModule(ctx, opts, approval.WithActivityHooks(events))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.NewCreateTable().Model((*post)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}

	posts, err := approval.NewWorkflow(module, approval.SubjectConfig[*post]{
		NewRecord: func() *post { return &post{} },
	})
	if err != nil {
		return err
	}

	result, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{})
	if err != nil {
		return err
	}
	for _, handler := range result.Handlers {
		if mark, ok := handler.(*approvalcmd.MarkSubjectHandler); ok {
			sub := dispatcher.SubscribeCommand(mark)
			defer sub.Unsubscribe()
		}
	}

	titles := []string{"Hello world", "Second thoughts", "Buy cheap watches"}
	records := make([]*post, 0, len(titles))
	for _, title := range titles {
		record := &post{Title: title}
		if _, err := db.NewInsert().Model(record).Exec(ctx); err != nil {
			return err
		}
		records = append(records, record)
	}

	editor := uuid.New()
	if _, err := posts.Draft().Mark(ctx, records[0]); err != nil {
		return err
	}
	if _, err := posts.Published().Mark(ctx, records[0], approval.WithActor(editor)); err != nil {
		return err
	}
	if _, err := posts.Pending().Mark(ctx, records[1], approval.WithExpiry(time.Now().Add(24*time.Hour))); err != nil {
		return err
	}
	if err := dispatcher.Dispatch(ctx, approvalcmd.MarkSubjectCommand{
		SubjectType: posts.SubjectType(),
		SubjectID:   records[2].ApprovalSubjectID(),
		Status:      "spam",
		ActorID:     &editor,
	}); err != nil {
		return err
	}

	if _, err := posts.Mark(ctx, records[1], "archived"); err != nil {
		fmt.Fprintf(out, "rejected: %v\n", err)
	}

	for _, name := range []string{"published", "pending", "spam", "draft"} {
		count, err := posts.Count(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-10s %d\n", name, count)
	}

	history, err := posts.History(ctx, records[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "history of %q:\n", records[0].Title)
	for _, entry := range history {
		status, err := module.Statuses().GetStatus(ctx, entry.ApprovalStatusID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s %s\n", entry.CreatedAt.Format(time.RFC3339), status.Name)
	}
	return nil
}
