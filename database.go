package main

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

/*

frame capture section. write-only telemetry: small populations (black
holes, planets) are captured row per entity per frame, the large ones
(stars, clouds) as per-population aggregates.

*/

const captureSchema = `
CREATE TABLE black_holes (
	frame      INTEGER,
	id         INTEGER,
	kind       INTEGER, -- 0 supermassive, 1 stellar
	x          REAL,
	y          REAL,
	z          REAL,
	angle      REAL,
	disk_angle REAL);

CREATE TABLE planets (
	frame INTEGER,
	id    INTEGER,
	x     REAL,
	y     REAL,
	z     REAL,
	angle REAL);

CREATE TABLE populations (
	frame       INTEGER,
	name        TEXT,
	count       INTEGER,
	mean_radius REAL);
`

const captureIndices = `
CREATE INDEX idx_bh_frame ON black_holes (frame, id);
CREATE INDEX idx_planet_frame ON planets (frame, id);
CREATE INDEX idx_pop_frame ON populations (frame, name);
`

const (
	insertBlackHole  = `INSERT INTO black_holes VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	insertPlanet     = `INSERT INTO planets VALUES (?, ?, ?, ?, ?, ?);`
	insertPopulation = `INSERT INTO populations VALUES (?, ?, ?, ?);`
)

// opendb creates and initializes the capture database in filename. Refuses
// to clobber an existing file.
func opendb(filename string) (*sql.DB, error) {
	if info, _ := os.Stat(filename); info != nil {
		return nil, fmt.Errorf("%s already exists", filename)
	}
	db, err := sql.Open("sqlite3", "file:"+filename+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(captureSchema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// createIndices runs the create index statements after the bulk insert.
func createIndices(db *sql.DB) error {
	_, err := db.Exec(captureIndices)
	return err
}

// frameToSqlite consumes frame jobs and records them in db. Sqlite permits
// one writer at a time, so run exactly one of these.
func frameToSqlite(db *sql.DB, wg *sync.WaitGroup, ch chan *frameJob) {
	defer wg.Done()

	bhStmt, err := db.Prepare(insertBlackHole)
	if err != nil {
		panic(err)
	}
	planetStmt, err := db.Prepare(insertPlanet)
	if err != nil {
		panic(err)
	}
	popStmt, err := db.Prepare(insertPopulation)
	if err != nil {
		panic(err)
	}

	for job := range ch {
		tx, err := db.Begin()
		if err != nil {
			panic(err)
		}
		// rebind to the transaction's connection, else the inserts run in
		// autocommit on another pooled connection and rollback is a no-op
		bhIns := tx.Stmt(bhStmt)
		planetIns := tx.Stmt(planetStmt)
		popIns := tx.Stmt(popStmt)

		for id, bh := range job.BlackHoles {
			if _, err = bhIns.Exec(job.Frame, id, int(bh.Kind),
				bh.X, bh.Y, bh.Z, bh.Angle, bh.DiskRotationAngle); err != nil {
				break
			}
		}
		if err == nil {
			for id, p := range job.System.Planets {
				if _, err = planetIns.Exec(job.Frame, id, p.X, p.Y, p.Z, p.Angle); err != nil {
					break
				}
			}
		}
		if err == nil {
			_, err = popIns.Exec(job.Frame, "stars", len(job.Stars), meanOrbitRadius(job.Stars))
		}
		if err == nil {
			_, err = popIns.Exec(job.Frame, "gas_clouds", len(job.GasClouds), meanCloudRadius(job.GasClouds))
		}

		if err != nil {
			tx.Rollback()
			panic(err)
		}
		tx.Commit()
	}
}

func meanOrbitRadius(stars []Star) float64 {
	if len(stars) == 0 {
		return 0
	}
	sum := 0.0
	for i := range stars {
		sum += stars[i].Radius
	}
	return sum / float64(len(stars))
}

func meanCloudRadius(clouds []GasCloud) float64 {
	if len(clouds) == 0 {
		return 0
	}
	sum := 0.0
	for i := range clouds {
		sum += clouds[i].Radius
	}
	return sum / float64(len(clouds))
}
