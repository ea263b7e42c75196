package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"classenum/internal/domain"
	"classenum/internal/logging"
)

// SQLStorage stores indexes in a MySQL or PostgreSQL database.
// Each Save adds a scan; Load returns the most recent one.
type SQLStorage struct {
	db      *sql.DB
	dialect dialect
}

type dialect struct {
	driver   string
	autoID   string
	textType string
}

var dialects = map[string]dialect{
	"mysql": {driver: "mysql", autoID: "BIGINT AUTO_INCREMENT PRIMARY KEY", textType: "LONGTEXT"},
	"pgx":   {driver: "pgx", autoID: "BIGSERIAL PRIMARY KEY", textType: "TEXT"},
}

// bind rewrites ? placeholders to the driver's form
func (d dialect) bind(query string) string {
	if d.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS class_scans (
			id ` + d.autoID + `,
			created_at VARCHAR(64) NOT NULL,
			duration_ns BIGINT NOT NULL,
			workers INT NOT NULL,
			classpath ` + d.textType + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS class_entries (
			scan_id BIGINT NOT NULL,
			package_name VARCHAR(512) NOT NULL,
			position INT NOT NULL,
			class_name VARCHAR(1024) NOT NULL,
			path ` + d.textType + ` NOT NULL,
			major_version INT NOT NULL,
			minor_version INT NOT NULL,
			access_flags INT NOT NULL,
			super_name VARCHAR(1024) NOT NULL,
			interfaces ` + d.textType + ` NOT NULL,
			package_error ` + d.textType + ` NOT NULL
		)`,
	}
}

// NewSQLStorage connects to the database and creates the tables if needed
func NewSQLStorage(driver, dsn string) (*SQLStorage, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(d.driver, strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	s, err := newSQLStorageDB(db, driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// newSQLStorageDB wraps an open connection and creates the tables if needed
func newSQLStorageDB(db *sql.DB, driver string) (*SQLStorage, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	s := &SQLStorage{db: db, dialect: d}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStorage) ensureSchema() error {
	for _, stmt := range s.dialect.schema() {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// Save writes the index as a new scan in a single transaction
func (s *SQLStorage) Save(index *domain.Index) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	scanID, err := s.insertScan(tx, index)
	if err != nil {
		return err
	}

	insert := s.dialect.bind(`INSERT INTO class_entries
		(scan_id, package_name, position, class_name, path, major_version, minor_version, access_flags, super_name, interfaces, package_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, pkg := range index.Packages {
		// A package without classes keeps a placeholder row so errors and empty packages survive
		if len(pkg.Classes) == 0 {
			if _, err := stmt.Exec(scanID, pkg.Package, -1, "", "", 0, 0, 0, "", "", pkg.Error); err != nil {
				return fmt.Errorf("insert package %s: %w", pkg.Package, err)
			}
			continue
		}
		for i, c := range pkg.Classes {
			_, err := stmt.Exec(scanID, pkg.Package, i, c.Name, c.Path,
				int(c.MajorVersion), int(c.MinorVersion), int(c.AccessFlags),
				c.SuperName, strings.Join(c.Interfaces, ","), pkg.Error)
			if err != nil {
				return fmt.Errorf("insert class %s: %w", c.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	logging.Debug("saved index", "driver", s.dialect.driver, "scan", scanID, "packages", len(index.Packages))
	return nil
}

func (s *SQLStorage) insertScan(tx *sql.Tx, index *domain.Index) (int64, error) {
	duration := time.Duration(index.Meta.DurationSeconds * float64(time.Second))
	args := []any{index.Meta.Timestamp, int64(duration), index.Meta.Workers, strings.Join(index.Meta.Classpath, "\n")}
	query := `INSERT INTO class_scans (created_at, duration_ns, workers, classpath) VALUES (?, ?, ?, ?)`

	// pgx does not support LastInsertId
	if s.dialect.driver == "pgx" {
		var id int64
		if err := tx.QueryRow(s.dialect.bind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert scan: %w", err)
		}
		return id, nil
	}

	res, err := tx.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert scan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert scan id: %w", err)
	}
	return id, nil
}

// Load reads the most recent scan
func (s *SQLStorage) Load() (*domain.Index, error) {
	var (
		scanID     int64
		createdAt  string
		durationNs int64
		workers    int
		classpath  string
	)
	row := s.db.QueryRow(`SELECT id, created_at, duration_ns, workers, classpath FROM class_scans ORDER BY id DESC LIMIT 1`)
	if err := row.Scan(&scanID, &createdAt, &durationNs, &workers, &classpath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no saved scan")
		}
		return nil, fmt.Errorf("read scan: %w", err)
	}

	rows, err := s.db.Query(s.dialect.bind(`SELECT package_name, position, class_name, path, major_version, minor_version,
		access_flags, super_name, interfaces, package_error
		FROM class_entries WHERE scan_id = ? ORDER BY package_name, position`), scanID)
	if err != nil {
		return nil, fmt.Errorf("read classes: %w", err)
	}
	defer rows.Close()

	var results []domain.PackageResult
	for rows.Next() {
		var (
			pkg, name, path, super, ifaces, pkgErr string
			position, major, minor, flags          int
		)
		if err := rows.Scan(&pkg, &position, &name, &path, &major, &minor, &flags, &super, &ifaces, &pkgErr); err != nil {
			return nil, fmt.Errorf("scan class row: %w", err)
		}
		if len(results) == 0 || results[len(results)-1].Package != pkg {
			results = append(results, domain.PackageResult{Package: pkg, Classes: []*domain.ClassHandle{}, Error: pkgErr})
		}
		if position < 0 {
			continue
		}
		handle := &domain.ClassHandle{
			Name:         name,
			Path:         path,
			MajorVersion: uint16(major),
			MinorVersion: uint16(minor),
			AccessFlags:  uint16(flags),
			SuperName:    super,
		}
		if ifaces != "" {
			handle.Interfaces = strings.Split(ifaces, ",")
		}
		last := &results[len(results)-1]
		last.Classes = append(last.Classes, handle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read classes: %w", err)
	}

	var cp []string
	if classpath != "" {
		cp = strings.Split(classpath, "\n")
	}
	index := domain.NewIndex(results, time.Duration(durationNs), workers, cp)
	index.Meta.Timestamp = createdAt
	return index, nil
}
