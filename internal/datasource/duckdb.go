package datasource

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/quantpilot/backtest/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBDataSource reads candle files through an in-process DuckDB, which
// handles CSV and Parquet natively and keeps ordering and projection in SQL.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBDataSource creates a DuckDB-backed candle source. An empty path
// opens an in-memory database.
func NewDuckDBDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDataLoadFailed, "failed to open duckdb")
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. It recreates the candles view over the
// given file, choosing the reader function by file extension.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("initializing candle view", zap.String("path", path))

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS candles;`); err != nil {
		return errors.Wrap(err, errors.ErrCodeDataLoadFailed, "failed to drop existing candle view")
	}

	reader := "read_csv_auto"
	if strings.HasSuffix(strings.ToLower(path), ".parquet") {
		reader = "read_parquet"
	}

	// Squirrel does not support CREATE VIEW, so this stays raw SQL. The
	// path is quoted as a SQL string literal.
	query := fmt.Sprintf(`CREATE VIEW candles AS SELECT * FROM %s('%s');`,
		reader, strings.ReplaceAll(path, "'", "''"))

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(err, errors.ErrCodeDataLoadFailed, "failed to read candle file %q", path)
	}

	return nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count() (int, error) {
	query, args, err := d.sq.Select("COUNT(*)").From("candles").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeQueryFailed, "failed to build count query")
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeQueryFailed, "failed to count candles")
	}

	return count, nil
}

// LoadAll implements DataSource.
func (d *DuckDBDataSource) LoadAll() ([]types.Candle, error) {
	query, args, err := d.sq.
		Select("timestamp", "open", "high", "low", "close", "volume").
		From("candles").
		OrderBy("timestamp ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "failed to build candle query")
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "failed to query candles")
	}
	defer rows.Close()

	var candles []types.Candle

	for rows.Next() {
		var candle types.Candle
		if err := rows.Scan(&candle.Timestamp, &candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "failed to scan candle row")
		}

		if !candle.IsValid() {
			d.logger.Warn("skipping candle with non-finite close", zap.Int64("timestamp", candle.Timestamp))

			continue
		}

		candles = append(candles, candle)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "failed to iterate candle rows")
	}

	if len(candles) == 0 {
		return nil, errors.New(errors.ErrCodeDataNotFound, "candle file contains no rows")
	}

	d.logger.Debug("loaded candles", zap.Int("count", len(candles)))

	return candles, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
