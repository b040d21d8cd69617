package output

import (
	"encoding/json"
	"io"

	"github.com/mqzhang/stabwatch/internal/model"
	"github.com/mqzhang/stabwatch/internal/pipeline"
	"github.com/mqzhang/stabwatch/internal/report"
)

// JSONFormatter formats a run result as JSON
type JSONFormatter struct {
	Pretty bool
}

// jsonReport is the serializable view of a run result.
type jsonReport struct {
	StartedAt     string         `json:"startedAt"`
	Folders       []jsonFolder   `json:"folders"`
	Warnings      []jsonWarning  `json:"warnings"`
	Summary       report.Summary `json:"summary"`
	ParseFailures int            `json:"parseFailures"`
	Columns       []string       `json:"columns"`
}

type jsonFolder struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Status    string   `json:"status"`
	Processed int      `json:"processed"`
	Failed    []string `json:"failed,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type jsonWarning struct {
	Row           model.Row    `json:"row"`
	ElapsedDays   int          `json:"elapsedDays"`
	RemainingDays int          `json:"remainingDays"`
	Status        model.Status `json:"status"`
}

// Format outputs the run result as JSON
func (f *JSONFormatter) Format(res *pipeline.RunResult, w io.Writer) error {
	out := jsonReport{
		StartedAt:     res.StartedAt.Format("2006-01-02T15:04:05"),
		Folders:       make([]jsonFolder, 0, len(res.Folders)),
		Warnings:      make([]jsonWarning, 0, len(res.Warnings)),
		Summary:       res.Summary,
		ParseFailures: res.ParseFailures,
		Columns:       res.Merged.Columns,
	}

	for _, fr := range res.Folders {
		jf := jsonFolder{
			Name:      fr.Name,
			Path:      fr.Path,
			Status:    string(fr.Status),
			Processed: fr.Processed,
			Failed:    fr.Failed,
		}
		if fr.Err != nil {
			jf.Error = fr.Err.Error()
		}
		out.Folders = append(out.Folders, jf)
	}

	for _, wr := range res.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning{
			Row:           wr.Row,
			ElapsedDays:   wr.ElapsedDays,
			RemainingDays: wr.RemainingDays,
			Status:        wr.Status,
		})
	}

	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(out)
}
