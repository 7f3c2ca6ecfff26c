package gencommon

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Rana718/crudgen/internal/classgen"
	"github.com/Rana718/crudgen/internal/querygen"
	"github.com/Rana718/crudgen/internal/schema"
	"github.com/Rana718/crudgen/internal/sproc"
)

// Output subdirectories under the configured out dir.
const (
	ProceduresDir = "procedures"
	ClassesDir    = "classes"
	QueriesDir    = "queries"
)

type ArtifactKind string

const (
	ProcedureArtifact ArtifactKind = "procedure"
	ClassArtifact     ArtifactKind = "class"
	QueryArtifact     ArtifactKind = "query"
	HelperArtifact    ArtifactKind = "helper"
)

// Artifact is one generated file. Path is relative to the out dir.
type Artifact struct {
	Kind   ArtifactKind
	Name   string
	Path   string
	Text   string
	Source string
}

// Failure is an artifact that could not be generated.
type Failure struct {
	Artifact string
	Err      error
}

// Report is the outcome of generating one table. Err is set when the whole
// table failed; Failures lists single artifacts that failed.
type Report struct {
	Table     string
	Artifacts []Artifact
	Warnings  []sproc.Warning
	Failures  []Failure
	Err       error
}

func (r *Report) fail(artifact string, err error) {
	r.Failures = append(r.Failures, Failure{Artifact: artifact, Err: err})
}

// Failed reports whether anything for the table was not generated.
func (r *Report) Failed() bool {
	return r.Err != nil || len(r.Failures) > 0
}

type Options struct {
	Procedures bool
	Classes    bool
	Queries    bool
	Kinds      []sproc.Kind
	Workers    int
	// Settings is folded into every fingerprint so a config change
	// regenerates all files.
	Settings string
}

type Runner struct {
	opts    Options
	procs   *sproc.Generator
	classes *classgen.Emitter
	queries *querygen.Generator
}

// NewRunner wires the generators. A generator may be nil when its output is
// not enabled.
func NewRunner(opts Options, procs *sproc.Generator, classes *classgen.Emitter, queries *querygen.Generator) (*Runner, error) {
	if opts.Procedures && procs == nil {
		return nil, errors.New("procedure output enabled without a procedure generator")
	}
	if opts.Classes && classes == nil {
		return nil, errors.New("class output enabled without a class emitter")
	}
	if opts.Queries && queries == nil {
		return nil, errors.New("query output enabled without a query generator")
	}
	if len(opts.Kinds) == 0 {
		opts.Kinds = sproc.DefaultKinds
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Runner{opts: opts, procs: procs, classes: classes, queries: queries}, nil
}

// Run generates every table concurrently. Reports come back in input order.
// A failing table never stops the others; the returned error is only set
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, tables []*schema.Table) ([]*Report, error) {
	reports := make([]*Report, len(tables))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = r.generate(t)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *Runner) generate(t *schema.Table) *Report {
	rep := &Report{Table: t.Name}
	if err := t.Validate(); err != nil {
		rep.Err = err
		return rep
	}
	source := Fingerprint(t, r.opts.Settings)

	if r.opts.Procedures {
		r.generateProcedures(t, source, rep)
	}
	if r.opts.Classes {
		r.generateClasses(t, source, rep)
	}
	if r.opts.Queries {
		r.generateQueries(t, source, rep)
	}
	return rep
}

func (r *Runner) generateProcedures(t *schema.Table, source string, rep *Report) {
	for _, kind := range r.opts.Kinds {
		procs, err := r.procs.Generate(t, kind)
		if err != nil {
			rep.fail(string(kind), err)
			continue
		}
		for _, p := range procs {
			rep.Warnings = append(rep.Warnings, p.Warnings...)
			rep.Artifacts = append(rep.Artifacts, Artifact{
				Kind:   ProcedureArtifact,
				Name:   p.Name,
				Path:   filepath.Join(ProceduresDir, p.Name+".sql"),
				Text:   p.Text,
				Source: source,
			})
		}
	}
}

func (r *Runner) generateClasses(t *schema.Table, source string, rep *Report) {
	c, err := r.classes.Emit(t)
	if err != nil {
		rep.fail("Class", err)
		return
	}
	rep.Artifacts = append(rep.Artifacts,
		Artifact{Kind: ClassArtifact, Name: c.Name, Path: filepath.Join(ClassesDir, c.Name+".cs"), Text: c.Object, Source: source},
		Artifact{Kind: ClassArtifact, Name: c.Name + "Data", Path: filepath.Join(ClassesDir, c.Name+"Data.cs"), Text: c.Data, Source: source},
	)
}

func (r *Runner) generateQueries(t *schema.Table, source string, rep *Report) {
	f, err := r.queries.Generate(t, r.opts.Kinds)
	if err != nil {
		rep.fail("Queries", err)
		return
	}
	rep.Warnings = append(rep.Warnings, f.Warnings...)
	for _, failure := range f.Errors {
		rep.fail(string(failure.Kind), failure.Err)
	}
	if len(f.Queries) == 0 {
		return
	}
	rep.Artifacts = append(rep.Artifacts, Artifact{
		Kind:   QueryArtifact,
		Name:   t.Name,
		Path:   filepath.Join(QueriesDir, t.Name+".sql"),
		Text:   f.Render(),
		Source: source,
	})
}

// Helpers returns the shared class support files. They depend only on the
// settings, not on any table.
func (r *Runner) Helpers() []Artifact {
	if !r.opts.Classes {
		return nil
	}
	source := fmt.Sprintf("helpers\x00%s", r.opts.Settings)
	return []Artifact{
		{Kind: HelperArtifact, Name: classgen.ReaderExtensionsFile, Path: filepath.Join(ClassesDir, "DL", classgen.ReaderExtensionsFile), Text: r.classes.ReaderExtensions(), Source: source},
		{Kind: HelperArtifact, Name: classgen.DataAccessLayerFile, Path: filepath.Join(ClassesDir, "DL", classgen.DataAccessLayerFile), Text: r.classes.DataAccessLayer(), Source: source},
	}
}
