package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/epalau/patrimonio/internal/config"
	"github.com/epalau/patrimonio/internal/infrastructure/providers"
	"github.com/epalau/patrimonio/internal/infrastructure/repository"
	"github.com/epalau/patrimonio/internal/present/rest"
	"github.com/epalau/patrimonio/internal/present/rest/middleware"
	"github.com/epalau/patrimonio/internal/service"
	"github.com/epalau/patrimonio/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	var configPath string

	rootCmd := &cobra.Command{
		Use:   "patrimonio",
		Short: "Family asset management server",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the config file")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
		hashpwCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if path := os.Getenv("PATRIMONIO_CONFIG"); path != "" {
		return path
	}
	return "config/config.yaml"
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(conf)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE:  func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if conf.Server.PostgresDsn == "" {
				return fmt.Errorf("no postgres dsn configured")
			}

			db, err := providers.NewDatabase(conf.Server)
			if err != nil {
				return fmt.Errorf("failed to connect database: %w", err)
			}
			if err := providers.MigrateDatabase(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

// hashpwCmd produces a bcrypt hash suitable for the accounts section of the
// config file.
func hashpwCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hashpw",
		Short: "Hash a password for use in the config accounts list",
		Args:  cobra.MaximumNArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				fmt.Fprint(os.Stderr, "password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func setupTracer(conf config.Server) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(conf.TraceEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	return provider, nil
}

func serve(conf config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	if conf.Server.EnableTrace {
		provider, err := setupTracer(conf.Server)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer func() {
			_ = provider.Shutdown(context.Background())
		}()
		e.Use(otelecho.Middleware("patrimonio"))
	}

	// Without a database the server still answers /health so operators can
	// see what is missing.
	if conf.Server.PostgresDsn == "" {
		health := service.NewHealthService(nil, nil)
		e.GET("/health", func(c echo.Context) error {
			return c.JSON(200, health.Check(c.Request().Context()))
		})
		return e.Start(conf.Server.Listen)
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	if err := providers.MigrateDatabase(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	rdb := providers.NewRedis(conf.Server)
	mc := providers.NewMemcache(conf.Server.MemcachedAddr)

	familyRepo := repository.NewFamilyMemberRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	paymentRepo := repository.NewRentPaymentRepository(db)
	insuranceRepo := repository.NewInsurancePolicyRepository(db)
	documentRepo := repository.NewDocumentRepository(db, mc)

	signal := service.NewSignalService(rdb)
	auth := service.NewAuthService(rdb, conf.Session, conf.Accounts)
	health := service.NewHealthService(db, rdb)

	familyUC := usecase.NewFamilyMemberUsecase(familyRepo, signal)
	propertyUC := usecase.NewPropertyUsecase(propertyRepo, signal)
	tenantUC := usecase.NewTenantUsecase(tenantRepo, signal)
	paymentUC := usecase.NewRentPaymentUsecase(paymentRepo, signal)
	insuranceUC := usecase.NewInsurancePolicyUsecase(insuranceRepo, signal)
	documentUC := usecase.NewDocumentUsecase(documentRepo, signal)

	handler := rest.NewHandler(
		auth, signal, health,
		familyUC, propertyUC, tenantUC, paymentUC, insuranceUC, documentUC,
	)
	handler.RegisterRoutes(e, middleware.NewAuthMiddleware(auth))

	return e.Start(conf.Server.Listen)
}
