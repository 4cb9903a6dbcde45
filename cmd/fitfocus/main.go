package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"fitfocus/internal/app"
	"fitfocus/internal/config"
	"fitfocus/internal/model"
	"fitfocus/internal/ui"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a FitApp. The caller must defer app.Close().
// command identifies the CLI command being run (e.g. "measure add", "shell").
func newApp(ctx context.Context, command string) (*app.FitApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	if err := app.LoadEnv(".env", defaults["env_file"]); err != nil {
		return nil, err
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewFitApp(ctx, cfg, command, app.ReadPassphrase)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readConfig loads the config file with defaults applied.
func readConfig() (*config.Config, string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get defaults: %w", err)
	}
	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}
	return cfg.WithDefaults(), defaults["config_path"], nil
}

func renderer() *ui.Renderer { return ui.NewRenderer(os.Stdout) }

var rootCmd = &cobra.Command{
	Use:          "fitfocus",
	Short:        "Personal health tracker with an AI coach",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Printf("Put GEMINI_API_KEY in %s or your environment to enable the AI coach.\n", defaults["env_file"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := readConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s (%s, %s)\n", cfg.LogDir, cfg.Log.Format, cfg.Log.Level)
		fmt.Printf("Store:      %s\n", cfg.Store.Type)
		fmt.Printf("Advisor:    %s (%s, %s cuisine, %ds timeout)\n", cfg.Advisor.Type, cfg.Advisor.Language, cfg.Advisor.Cuisine, cfg.Advisor.TimeoutSeconds)
		fmt.Printf("Encryption: %t\n", cfg.Encryption.Enabled)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage the encryption key pair",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := readConfig()
		if err != nil {
			return err
		}
		pass, err := app.ReadNewPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		if err := app.SetupKeys(cfg, pass); err != nil {
			return err
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		if !cfg.Encryption.Enabled {
			fmt.Println("Set enabled = true under [encryption] to encrypt stored data.")
		}
		return nil
	},
}

var keysPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the passphrase protecting the private key",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := readConfig()
		if err != nil {
			return err
		}
		oldPass, err := app.ReadPassphrase("Current passphrase: ")
		if err != nil {
			return err
		}
		newPass, err := app.ReadNewPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		if err := app.ChangePassphrase(cfg, oldPass, newPass); err != nil {
			return err
		}
		fmt.Println("Passphrase changed.")
		return nil
	},
}

// measure command
var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Record and list body measurements",
}

var measureAddCmd = &cobra.Command{
	Use:   "add WEIGHT BODY_FAT VISCERAL LEAN WAIST",
	Short: "Record a measurement",
	Args:  cobra.ExactArgs(len(model.AllMetrics)),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := ui.ParseMeasurement(args)
		if err != nil {
			return err
		}
		if date, _ := cmd.Flags().GetString("date"); date != "" {
			t, err := time.ParseInLocation("2006-01-02", date, time.Local)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			in.Date = t
		}

		a, err := newApp(cmd.Context(), "measure add")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.RecordMeasurement(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("recording measurement: %w", err)
		}

		fmt.Printf("Recorded measurement for %s\n", res.Measurement.Date.Local().Format("02 Jan 2006"))
		fmt.Printf("AI coach: %s\n", res.Motivation)
		if res.EasyWin != "" {
			fmt.Printf("Motivation hack (%s): %s\n", res.Signal, res.EasyWin)
		}
		return nil
	},
}

var measureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "measure list")
		if err != nil {
			return err
		}
		defer a.Close()

		renderer().MeasurementList(a.Snapshot().Measurements)
		return nil
	},
}

// food command
var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log meals and get nutrition advice",
}

var foodAddCmd = &cobra.Command{
	Use:   "add [TYPE] DESCRIPTION...",
	Short: "Log a meal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "food add")
		if err != nil {
			return err
		}
		defer a.Close()

		meal := a.DefaultMeal()
		if t, err := model.ParseMealType(args[0]); err == nil && len(args) > 1 {
			meal = t
			args = args[1:]
		}

		e, err := a.LogFood(cmd.Context(), meal, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("logging food: %w", err)
		}
		fmt.Printf("Added to %s: %s\n", strings.ToLower(string(e.Type)), e.Description)
		return nil
	},
}

var foodTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List today's meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "food today")
		if err != nil {
			return err
		}
		defer a.Close()

		entries := a.TodayEntries()
		if len(entries) == 0 {
			fmt.Println("Nothing logged today.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-9s %s\n", e.Date.Local().Format("15:04"), e.Type, e.Description)
		}
		return nil
	},
}

var foodSuggestCmd = &cobra.Command{
	Use:   "suggest [TYPE]",
	Short: "Suggest a dish for a meal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var meal model.MealType
		if len(args) == 1 {
			t, err := model.ParseMealType(args[0])
			if err != nil {
				return err
			}
			meal = t
		}

		a, err := newApp(cmd.Context(), "food suggest")
		if err != nil {
			return err
		}
		defer a.Close()
		if meal == "" {
			meal = a.DefaultMeal()
		}

		fmt.Printf("Suggestion for your %s: %s\n", strings.ToLower(string(meal)), a.SuggestMeal(cmd.Context(), meal))
		return nil
	},
}

var foodAnalyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"analyse"},
	Short:   "Analyze today's meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "food analyze")
		if err != nil {
			return err
		}
		defer a.Close()

		text := a.AnalyzeToday(cmd.Context())
		if text == "" {
			fmt.Println("Nothing logged today.")
			return nil
		}
		fmt.Printf("Analysis: %s\n", text)
		return nil
	},
}

// goals command
var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "View and edit goals and the health profile",
}

var goalsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show goals and profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "goals show")
		if err != nil {
			return err
		}
		defer a.Close()

		renderer().Settings(a.Snapshot().Goals)
		return nil
	},
}

var goalsSetCmd = &cobra.Command{
	Use:   "set intermediate|final METRIC VALUE",
	Short: "Set one goal metric",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "goals set")
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.UpdateGoals(cmd.Context(), func(g *model.UserGoals) error {
			_, _, err := ui.SetGoal(g, args[0], args[1], args[2])
			return err
		})
		if err != nil {
			return fmt.Errorf("updating goals: %w", err)
		}
		fmt.Println(ui.GoalsSavedNotice)
		return nil
	},
}

var goalsProfileCmd = &cobra.Command{
	Use:   "profile objective|conditions|age|sex|height VALUE...",
	Short: "Set one health profile field",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "goals profile")
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.UpdateGoals(cmd.Context(), func(g *model.UserGoals) error {
			return ui.SetProfileField(g, args[0], strings.Join(args[1:], " "))
		})
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		fmt.Println(ui.GoalsSavedNotice)
		return nil
	},
}

// dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show BMI, goal progress and charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "dashboard")
		if err != nil {
			return err
		}
		defer a.Close()

		renderer().Dashboard(a.Dashboard())
		return nil
	},
}

// shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive tracker",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "shell")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Shell(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)
	keysCmd.AddCommand(keysPasswdCmd)

	// measure subcommands
	measureCmd.AddCommand(measureAddCmd)
	measureAddCmd.Flags().String("date", "", "Measurement date as YYYY-MM-DD (default: now)")
	measureCmd.AddCommand(measureListCmd)

	// food subcommands
	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodTodayCmd)
	foodCmd.AddCommand(foodSuggestCmd)
	foodCmd.AddCommand(foodAnalyzeCmd)

	// goals subcommands
	goalsCmd.AddCommand(goalsShowCmd)
	goalsCmd.AddCommand(goalsSetCmd)
	goalsCmd.AddCommand(goalsProfileCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(measureCmd)
	rootCmd.AddCommand(foodCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(shellCmd)
}
