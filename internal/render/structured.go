package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/workfetch/internal/model"
	"github.com/verte-zerg/workfetch/internal/workday"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the structured form of a status.
type Report struct {
	Date               model.Date `json:"date" yaml:"date"`
	Now                time.Time  `json:"now" yaml:"now"`
	Boot               time.Time  `json:"boot_time" yaml:"boot_time"`
	Start              time.Time  `json:"start" yaml:"start"`
	Source             string     `json:"source" yaml:"source"`
	RoundedStart       time.Time  `json:"rounded_start" yaml:"rounded_start"`
	WorkMinutes        int        `json:"work_minutes" yaml:"work_minutes"`
	BreakMinutes       int        `json:"break_minutes" yaml:"break_minutes"`
	TargetTotalMinutes int        `json:"target_total_minutes" yaml:"target_total_minutes"`
	EndOfDay           time.Time  `json:"end_of_day" yaml:"end_of_day"`
	RemainingMinutes   int        `json:"remaining_minutes" yaml:"remaining_minutes"`
	Done               bool       `json:"done" yaml:"done"`
}

// NewReport builds a report from a status.
func NewReport(st workday.Status) Report {
	res := st.Result
	return Report{
		Date:               st.Record.Date,
		Now:                st.Now,
		Boot:               st.Boot,
		Start:              st.Start,
		Source:             string(st.Source),
		RoundedStart:       res.RoundedStart,
		WorkMinutes:        res.WorkMinutes,
		BreakMinutes:       res.BreakMinutes,
		TargetTotalMinutes: res.TargetTotalMinutes,
		EndOfDay:           res.EndOfDay,
		RemainingMinutes:   res.RemainingMinutes,
		Done:               res.Done(),
	}
}

// Write renders st to w in the given format.
func Write(w io.Writer, st workday.Status, format string, opts Options) error {
	switch format {
	case "", FormatText:
		_, err := io.WriteString(w, Text(st, opts))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(st))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(st)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
