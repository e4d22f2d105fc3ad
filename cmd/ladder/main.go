package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/axkov/ladder"
	"github.com/axkov/ladder/internal/cli"
	"github.com/logrusorgru/aurora/v3"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const usage = `usage: ladder [flags] <command>

commands:
  init      create the version tracking table
  migrate   run a module forward (one step, -version N, or -version latest)
  rollback  run a module backward (one step or -version N)
  version   print a module's current version
  create    scaffold the next step file pair for a module (-name)
`

var (
	configPath = flag.String("config", "", "yaml config file; LADDER_* env vars are used when omitted")
	dbURL      = flag.String("db", "", "database url, overrides config")
	folder     = flag.String("folder", "", "migrations folder, overrides config")
	module     = flag.String("module", "", "module to operate on")
	version    = flag.String("version", "", "target version: an integer or latest")
	name       = flag.String("name", "", "step name for the create command")
	strict     = flag.Bool("strict", false, "fail on non-conforming migration files")
	debug      = flag.Bool("debug", false, "print debug output")
	sqlEcho    = flag.Bool("sql", false, "print executed sql")
	noColor    = flag.Bool("no-color", false, "disable colored output")
	timeout    = flag.Duration("timeout", 2*time.Minute, "deadline for the whole run")
)

func main() {
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	printer := log.New(os.Stdout, "", 0)
	var lgOpt ladder.OptionFunc
	if *noColor {
		lgOpt = ladder.UsePlainLogger(printer, *sqlEcho, *debug)
	} else {
		lgOpt = ladder.UseColorLogger(printer, *sqlEcho, *debug)
	}

	app, err := cli.New(ctx, cfg, lgOpt)
	if err != nil {
		fatal(err)
	}

	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			fatal(closeErr)
		}
	}()

	switch command {
	case "init":
		if err := app.Init(ctx); err != nil {
			fatal(err)
		}
		fmt.Println(success("tracking table ready"))

	case "migrate":
		res, err := app.Migrate(ctx, *module, *version)
		if err != nil {
			fatal(err)
		}
		report(res)

	case "rollback":
		res, err := app.Rollback(ctx, *module, *version)
		if err != nil {
			fatal(err)
		}
		report(res)

	case "version":
		v, found, err := app.Version(ctx, *module)
		if err != nil {
			fatal(err)
		}
		if !found {
			fmt.Println(success(fmt.Sprintf("module %s has never been migrated", *module)))
		} else {
			fmt.Println(success(fmt.Sprintf("module %s is at version %d", *module, v)))
		}

	case "create":
		key, err := app.CreateStep(*module, *name)
		if err != nil {
			fatal(err)
		}
		fmt.Println(success(fmt.Sprintf("created step %s for module %s", key, *module)))

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func loadConfig() (cli.Config, error) {
	var cfg cli.Config
	var err error

	if *configPath != "" {
		cfg, err = cli.ConfigFromYaml(*configPath)
	} else {
		cfg, err = cli.ConfigFromEnv()
	}
	if err != nil {
		return cli.Config{}, err
	}

	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}

	if *folder != "" {
		cfg.MigrationsFolder = *folder
	}

	if *strict {
		cfg.Strict = true
	}

	return cfg, nil
}

func report(res *ladder.Result) {
	if res.NoOp {
		msg := fmt.Sprintf("nothing to do: module %s is %s", res.Module, res.Reason)
		if *noColor {
			fmt.Println(msg)
		} else {
			fmt.Println(aurora.Yellow(msg).String())
		}
		return
	}

	fmt.Println(success(fmt.Sprintf(
		"module %s is now at version %d (%d steps applied)",
		res.Module, res.Version, len(res.Applied),
	)))
}

func success(msg string) string {
	if *noColor {
		return msg
	}

	return aurora.Green(msg).String()
}

func fatal(err error) {
	if *noColor {
		log.Fatalf("ladder: %s", err)
	}

	log.Fatal(aurora.Red(fmt.Sprintf("ladder: %s", err)).String())
}
