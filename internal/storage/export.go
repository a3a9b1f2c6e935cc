package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/nbodysim/internal/sim"
)

var csvHeader = []string{"step", "time", "energy", "body", "mass", "x", "y", "z", "vx", "vy", "vz"}

// WriteCSV writes one row per body per frame.
func WriteCSV(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	for _, f := range frames {
		for id, b := range f.Bodies {
			row := []string{
				strconv.Itoa(f.Step),
				format(f.Time),
				format(f.Energy),
				strconv.Itoa(id),
				format(b.Mass),
				format(b.Pos.X()), format(b.Pos.Y()), format(b.Pos.Z()),
				format(b.Vel.X()), format(b.Vel.Y()), format(b.Vel.Z()),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportBody struct {
	Mass float64  `json:"mass"`
	Pos  [3]Float `json:"pos"`
	Vel  [3]Float `json:"vel"`
}

type ExportFrame struct {
	Step   int          `json:"step"`
	Time   float64      `json:"time"`
	Energy Float        `json:"energy"`
	Bodies []ExportBody `json:"bodies"`
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []ExportFrame `json:"frames"`
}

func WriteJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		Run:    meta,
		Frames: make([]ExportFrame, len(frames)),
	}

	for i, f := range frames {
		ef := ExportFrame{
			Step:   f.Step,
			Time:   f.Time,
			Energy: Float(f.Energy),
			Bodies: make([]ExportBody, len(f.Bodies)),
		}
		for j, b := range f.Bodies {
			ef.Bodies[j] = ExportBody{Mass: b.Mass, Pos: floats(b.Pos), Vel: floats(b.Vel)}
		}
		data.Frames[i] = ef
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
