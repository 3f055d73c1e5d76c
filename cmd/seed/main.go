package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/targetjit/inventory-backend/internal/alerts"
	"github.com/targetjit/inventory-backend/internal/analytics"
	"github.com/targetjit/inventory-backend/internal/config"
	"github.com/targetjit/inventory-backend/internal/domain"
	"github.com/targetjit/inventory-backend/internal/drive"
	"github.com/targetjit/inventory-backend/internal/ingest"
	"github.com/targetjit/inventory-backend/internal/storage"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Load inventory CSV files into the database and print reports",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Run CSV files through the import pipeline and commit them",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing inventory CSV files",
						Value:   "./data/seeds",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
					&cli.StringFlag{
						Name:    "drive-folder",
						Usage:   "Google Drive folder ID to pull CSV files from before importing",
						EnvVars: []string{"GOOGLE_DRIVE_FOLDER_ID"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runImport,
			},
			{
				Name:  "fetch",
				Usage: "Download archived import files from object storage into the data dir",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Object key prefix to fetch",
						Value: "imports/",
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory to download archived files into",
						Value:   "./data/seeds",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Action: runFetch,
			},
			{
				Name:  "report",
				Usage: "Print the analysis report for the current record set",
				Flags: []cli.Flag{
					newDBURLFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: runReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runImport(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	dataDir := c.String("data-dir")
	if folderID := c.String("drive-folder"); folderID != "" {
		svc, err := drive.NewService(os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"))
		if err != nil {
			return fmt.Errorf("failed to init drive service: %w", err)
		}
		downloaded, err := drive.NewDownloader(svc).DownloadFolderCSV(c.Context, drive.DownloadOptions{
			FolderID:    folderID,
			DownloadDir: dataDir,
		})
		if err != nil {
			return fmt.Errorf("failed to download drive folder %s: %w", folderID, err)
		}
		log.Printf("Downloaded %d CSV files from Drive folder %s", len(downloaded), folderID)
	}

	paths, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dataDir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no CSV files found in %s", dataDir)
	}

	pipeline := ingest.NewPipeline(nil)

	for _, path := range paths {
		log.Printf("Importing %s", path)

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result, err := pipeline.Run(string(raw))
		if err != nil {
			return fmt.Errorf("import of %s failed: %w", path, err)
		}
		for _, rowErr := range result.RowErrors {
			log.Printf("  row %d: %s", rowErr.Row, rowErr.Message)
		}

		importID := uuid.NewString()
		if err := replaceRecords(c.Context, db, importID, result.Records); err != nil {
			return fmt.Errorf("failed to store records from %s: %w", path, err)
		}

		generated := alerts.Generate(result.Records)
		log.Printf("Imported %d records (%d warnings, %d alerts) from %s",
			len(result.Records), len(result.RowErrors), len(generated), filepath.Base(path))
	}

	return nil
}

func replaceRecords(ctx context.Context, db *sql.DB, importID string, records []domain.InventoryRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_records`); err != nil {
		return fmt.Errorf("failed to clear inventory records: %w", err)
	}

	query := `
		INSERT INTO inventory_records (
			sku_id, name, category, current_stock, rate, value,
			reorder_point, turnover_rate, lead_time, average_demand,
			stockout_risk, import_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.SKUID, rec.Name, rec.Category, rec.CurrentStock, rec.Rate,
			rec.Value, rec.ReorderPoint, rec.TurnoverRate, rec.LeadTime,
			rec.AverageDemand, rec.StockoutRisk, importID, now,
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.SKUID, err)
		}
	}

	return tx.Commit()
}

func runFetch(c *cli.Context) error {
	cfg := config.Load()

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage client: %w", err)
	}

	return fetchArchived(c.Context, store, c.String("prefix"), c.String("data-dir"))
}

func fetchArchived(ctx context.Context, store storage.ObjectStorage, prefix, dataDir string) error {
	objects, err := store.ListObjects(ctx, prefix)
	if err != nil {
		return fmt.Errorf("failed to list archived imports: %w", err)
	}
	if len(objects) == 0 {
		return fmt.Errorf("no archived imports under %q", prefix)
	}

	for _, obj := range objects {
		dest := filepath.Join(dataDir, filepath.Base(obj.Key))
		if err := store.DownloadObject(ctx, obj.Key, dest); err != nil {
			return fmt.Errorf("failed to fetch %s: %w", obj.Key, err)
		}
		log.Printf("Fetched %s (%d bytes)", obj.Key, obj.Size)
	}

	log.Printf("Fetched %d archived files into %s", len(objects), dataDir)
	return nil
}

func runReport(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(c.Context, `
		SELECT
			sku_id, name, category, current_stock, rate, value,
			reorder_point, turnover_rate, lead_time, average_demand,
			stockout_risk
		FROM inventory_records
		ORDER BY sku_id ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to query inventory records: %w", err)
	}
	defer rows.Close()

	var records []domain.InventoryRecord
	for rows.Next() {
		var rec domain.InventoryRecord
		if err := rows.Scan(
			&rec.SKUID, &rec.Name, &rec.Category, &rec.CurrentStock, &rec.Rate,
			&rec.Value, &rec.ReorderPoint, &rec.TurnoverRate, &rec.LeadTime,
			&rec.AverageDemand, &rec.StockoutRisk,
		); err != nil {
			return fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate records: %w", err)
	}

	if len(records) == 0 {
		return fmt.Errorf("no inventory records loaded, run the import command first")
	}

	report := analytics.BuildReport(records)
	return analytics.WriteReport(os.Stdout, report)
}
