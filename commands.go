package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/icodeforyou/option-go/config"
	"github.com/icodeforyou/option-go/database"
	"github.com/icodeforyou/option-go/logging"
	"github.com/icodeforyou/option-go/slice"
	"github.com/icodeforyou/option-go/task"
	"github.com/icodeforyou/option-go/types/option"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
)

var errUsage = errors.New("wrong number of arguments")

// env is shared by the commands of one run. The database is opened on
// first use only.
type env struct {
	cnfg    *config.AppConfig
	db      option.Option[*database.Database]
	dbPath  string
	console slog.Handler
	logger  *slog.Logger
}

func newApp(out io.Writer) *cli.App {
	e := &env{}
	return &cli.App{
		Name:    "option-go",
		Usage:   "inspect optional values and optional settings",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config file"},
			&cli.StringFlag{Name: "db", Usage: "database file, overrides database.path"},
		},
		Before: e.setup,
		After:  e.teardown,
		Commands: []*cli.Command{
			{
				Name:      "divide",
				Usage:     "integer division that is None for a zero divisor",
				ArgsUsage: "A B",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "fallback", Usage: "print the quotient or this value"},
					&cli.BoolFlag{Name: "result", Usage: "print the quotient as a result"},
				},
				Action: e.divide,
			},
			{
				Name:      "set",
				Usage:     "store a setting, NULL when VALUE is omitted",
				ArgsUsage: "KEY [VALUE]",
				Action:    e.set,
			},
			{
				Name:      "get",
				Usage:     "show a setting, telling a missing key from a NULL value",
				ArgsUsage: "KEY",
				Action:    e.get,
			},
			{
				Name:      "unset",
				Usage:     "remove a setting",
				ArgsUsage: "KEY",
				Action:    e.unset,
			},
			{
				Name:   "list",
				Usage:  "list all settings",
				Action: e.list,
			},
			{
				Name:      "fetch",
				Usage:     "resolve a setting in the background and print it as a result",
				ArgsUsage: "KEY",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "timeout", Value: 5 * time.Second, Usage: "how long to wait for the lookup"},
				},
				Action: e.fetch,
			},
			{
				Name:  "log",
				Usage: "show stored log entries",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "level", Usage: "minimum level"},
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "size", Value: 20},
				},
				Action: e.log,
			},
			{
				Name:   "maintain",
				Usage:  "purge the log down to logging.db_max_entries",
				Action: e.maintain,
			},
		},
	}
}

func (e *env) setup(ctx *cli.Context) error {
	cnfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	e.cnfg = cnfg
	e.dbPath = option.FromOk(ctx.String("db"), ctx.IsSet("db")).UnwrapOr(cnfg.Database.GetPath())
	e.console = tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	e.logger = slog.New(e.console)
	slog.SetDefault(e.logger)
	return nil
}

func (e *env) teardown(ctx *cli.Context) error {
	if db, ok := e.db.Peek(); ok {
		db.Close()
	}
	return nil
}

func (e *env) database(ctx *cli.Context) (*database.Database, error) {
	if db, ok := e.db.Peek(); ok {
		return db, nil
	}

	db, err := database.New(ctx.Context, e.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	e.db = option.Some(db)

	e.logger = slog.New(logging.NewMultiHandler(
		e.console,
		logging.NewSQLiteHandler(db, e.cnfg.Logging.GetDbLevel(), e.cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(e.logger)
	db.SetLogger(e.logger.With("module", "database"))

	return db, nil
}

func (e *env) depth() int {
	return e.cnfg.Format.GetDepth()
}

func divide(a, b int) option.Option[int] {
	if b == 0 {
		return option.None[int]()
	}
	return option.Some(a / b)
}

func (e *env) divide(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("divide: %w", errUsage)
	}
	operands := slice.FilterMap(ctx.Args().Slice(), func(s string) option.Option[int] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return option.None[int]()
		}
		return option.Some(n)
	})
	if len(operands) != 2 {
		return fmt.Errorf("divide: operands must be integers, got %v", ctx.Args().Slice())
	}

	quotient := divide(operands[0], operands[1])
	fmt.Fprintln(ctx.App.Writer, quotient.Inspect(e.depth()))

	if ctx.IsSet("fallback") {
		fmt.Fprintln(ctx.App.Writer, quotient.UnwrapOr(ctx.Int("fallback")))
	}
	if ctx.Bool("result") {
		fmt.Fprintln(ctx.App.Writer, quotient.OkOrString("division by zero"))
	}
	return nil
}

func (e *env) set(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	key, err := slice.First(args).Get()
	if err != nil || len(args) > 2 {
		return fmt.Errorf("set: %w", errUsage)
	}
	value := slice.First(args[1:])

	db, err := e.database(ctx)
	if err != nil {
		return err
	}
	if err := db.PutSetting(ctx.Context, key, value); err != nil {
		return err
	}
	e.logger.Info("setting stored", slog.String("key", key), slog.String("value", value.String()))
	return nil
}

func (e *env) get(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("get: %w", errUsage)
	}
	db, err := e.database(ctx)
	if err != nil {
		return err
	}

	value, err := db.GetSetting(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, value.Inspect(e.depth()))
	fmt.Fprintln(ctx.App.Writer, "flattened:", value.Flatten().Inspect(e.depth()))
	return nil
}

func (e *env) unset(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("unset: %w", errUsage)
	}
	db, err := e.database(ctx)
	if err != nil {
		return err
	}

	key := ctx.Args().First()
	deleted, err := db.DeleteSetting(ctx.Context, key)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(ctx.App.Writer, "%s not found\n", key)
		return nil
	}
	e.logger.Info("setting removed", slog.String("key", key))
	return nil
}

func (e *env) list(ctx *cli.Context) error {
	db, err := e.database(ctx)
	if err != nil {
		return err
	}

	settings, err := db.ListSettings(ctx.Context)
	if err != nil {
		return err
	}
	for _, s := range settings {
		fmt.Fprintf(ctx.App.Writer, "%s\t%s\n", s.Key, s.Value.Inspect(e.depth()))
	}
	return nil
}

func (e *env) fetch(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("fetch: %w", errUsage)
	}
	db, err := e.database(ctx)
	if err != nil {
		return err
	}

	key := ctx.Args().First()
	pending := option.FromAsync(func() (*string, error) {
		value, err := db.LookupSetting(context.Background(), key)
		if err != nil {
			return nil, err
		}
		return option.MapOr[string, *string](value, nil, func(s string) *string { return &s }), nil
	})

	waitCtx, cancel := context.WithTimeout(ctx.Context, ctx.Duration("timeout"))
	defer cancel()

	value, err := pending.Await(waitCtx)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", key, err)
	}

	res := option.Map(value, func(s *string) string { return *s }).
		OkOrString(fmt.Sprintf("setting %s is not set", key))
	fmt.Fprintln(ctx.App.Writer, res)
	return nil
}

func (e *env) log(ctx *cli.Context) error {
	db, err := e.database(ctx)
	if err != nil {
		return err
	}

	minLevel := logging.LevelFromString(option.FromOk(ctx.String("level"), ctx.IsSet("level")))
	entries, err := db.GetLogEntries(ctx.Context, minLevel, ctx.Int("page"), ctx.Int("size"))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Fprintf(ctx.App.Writer, "%s %-5s %s %s\n",
			entry.Timestamp.Format(time.RFC3339), slog.Level(entry.Level), entry.Message, entry.Attrs)
	}
	return nil
}

func (e *env) maintain(ctx *cli.Context) error {
	db, err := e.database(ctx)
	if err != nil {
		return err
	}
	task.NewTasks(db, e.cnfg).MaintenanceTask()
	return nil
}
