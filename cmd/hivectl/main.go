// cmd/hivectl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/surveyhive/surveyhive/internal/auth"
	"github.com/surveyhive/surveyhive/internal/config"
	"github.com/surveyhive/surveyhive/internal/model"
	"github.com/surveyhive/surveyhive/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createSuperuserCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "hivectl",
	Short: "hivectl is the SurveyHive admin CLI",
	Long:  `hivectl runs schema migrations and bootstraps platform superusers.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations",
	Long:  `Migrate brings the database schema up to date for all SurveyHive tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDB()

		err := db.AutoMigrate(
			&model.User{},
			&model.Organization{},
			&model.Membership{},
			&model.Project{},
			&model.ProjectGrant{},
			&model.Survey{},
			&model.SurveyResponse{},
			&model.OrgInvitation{},
			&model.SurveyInvitation{},
			&model.AuditLog{},
		)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		fmt.Println("Schema is up to date")
	},
}

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser [email] [password]",
	Short: "Create a platform superuser",
	Long: `Create a user with the platform superuser flag. Superusers can create
and delete organizations; organization roles can never grant that.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDB()
		users := repository.NewUserRepository(db)
		hasher := auth.NewPasswordHasher()

		hashed, err := hasher.Hash(args[1])
		if err != nil {
			log.Fatalf("Hashing password: %v", err)
		}

		user := &model.User{
			Email:        args[0],
			FirstName:    "Platform",
			LastName:     "Admin",
			Status:       model.StatusActive,
			IsSuperuser:  true,
			PasswordHash: hashed,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Creating superuser: %v", err)
		}

		fmt.Printf("Created superuser %s (%s)\n", user.Email, user.ID)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hivectl 0.1.0")
	},
}

func mustOpenDB() *gorm.DB {
	cfg := config.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	logLevel := logger.Silent
	if verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Connecting to database: %v", err)
	}

	return db
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
