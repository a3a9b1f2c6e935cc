package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/sim"
)

const schema = `
CREATE TABLE frames (
	step 	INTEGER PRIMARY KEY,
	time 	REAL,
	energy 	REAL);
CREATE TABLE bodies (
	step 	INTEGER,
	id 		INTEGER,
	mass 	REAL,
	x 		REAL,
	y 		REAL,
	z 		REAL,
	vx 		REAL,
	vy 		REAL,
	vz 		REAL);
CREATE INDEX idx_step ON bodies (step, id);
`

const (
	insertFrame  = `INSERT INTO frames VALUES (?, ?, ?);`
	insertBody   = `INSERT INTO bodies VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	selectFrames = `SELECT step, time, energy FROM frames ORDER BY step ASC;`
	selectBodies = `SELECT step, mass, x, y, z, vx, vy, vz FROM bodies ORDER BY step ASC, id ASC;`
)

func openTrajectory(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", "file:"+path+"?_journal_mode=OFF&_synchronous=OFF")
}

// writeTrajectory stores all frames in a single transaction. Float values are
// stored as REAL so they read back bit-for-bit; SQLite turns NaN into NULL.
func writeTrajectory(path string, frames []sim.Frame) (err error) {
	db, err := openTrajectory(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	frameStmt, err := tx.Prepare(insertFrame)
	if err != nil {
		return err
	}
	defer frameStmt.Close()

	bodyStmt, err := tx.Prepare(insertBody)
	if err != nil {
		return err
	}
	defer bodyStmt.Close()

	for _, f := range frames {
		if _, err = frameStmt.Exec(f.Step, f.Time, f.Energy); err != nil {
			return fmt.Errorf("frame %d: %w", f.Step, err)
		}
		for id, b := range f.Bodies {
			_, err = bodyStmt.Exec(f.Step, id, b.Mass,
				b.Pos.X(), b.Pos.Y(), b.Pos.Z(),
				b.Vel.X(), b.Vel.Y(), b.Vel.Z())
			if err != nil {
				return fmt.Errorf("frame %d body %d: %w", f.Step, id, err)
			}
		}
	}

	return tx.Commit()
}

func readTrajectory(path string) ([]sim.Frame, error) {
	db, err := openTrajectory(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(selectFrames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []sim.Frame
	index := make(map[int]int)
	for rows.Next() {
		var (
			f      sim.Frame
			energy Float
		)
		if err := rows.Scan(&f.Step, &f.Time, &energy); err != nil {
			return nil, err
		}
		f.Energy = float64(energy)
		index[f.Step] = len(frames)
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bodyRows, err := db.Query(selectBodies)
	if err != nil {
		return nil, err
	}
	defer bodyRows.Close()

	for bodyRows.Next() {
		var (
			step       int
			b          dynamo.Body
			x, y, z    Float
			vx, vy, vz Float
		)
		if err := bodyRows.Scan(&step, &b.Mass, &x, &y, &z, &vx, &vy, &vz); err != nil {
			return nil, err
		}
		i, ok := index[step]
		if !ok {
			return nil, fmt.Errorf("body row for unknown frame %d", step)
		}
		b.Pos = dynamo.V(float64(x), float64(y), float64(z))
		b.Vel = dynamo.V(float64(vx), float64(vy), float64(vz))
		frames[i].Bodies = append(frames[i].Bodies, b)
	}

	return frames, bodyRows.Err()
}
