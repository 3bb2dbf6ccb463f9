package driver

import (
	"strconv"

	"rpncalc/internal/diag"
	"rpncalc/internal/eval"
	"rpncalc/internal/lexer"
	"rpncalc/internal/observ"
	"rpncalc/internal/parser"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
)

// EvalOptions настраивают полный прогон выражения.
type EvalOptions struct {
	MaxDiagnostics int
	// Cache может быть nil; при попадании лексер и парсер не запускаются
	Cache *SeqCache
	// Timings включает таймер фаз; отчёт попадает в EvalResult.Timing
	Timings bool
}

type EvalResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Seq      rpn.Sequence
	Value    float64
	Bag      *diag.Bag
	OK       bool
	CacheHit bool
	Timing   *observ.Report
}

// Eval загружает файл и прогоняет его через всю цепочку: лексер, парсер,
// стековую машину.
func Eval(path string, opts EvalOptions) (*EvalResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return evalFile(fs, fileID, opts), nil
}

// EvalSource вычисляет выражение из памяти.
func EvalSource(name string, content []byte, opts EvalOptions) *EvalResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return evalFile(fs, fileID, opts)
}

func evalFile(fs *source.FileSet, fileID source.FileID, opts EvalOptions) *EvalResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &EvalResult{FileSet: fs, File: file, Bag: bag}

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer != nil {
			timer.End(idx, note)
		}
	}

	if opts.Cache != nil {
		idx := begin("cache")
		seq, hit := cacheLookup(opts.Cache, file)
		if hit {
			end(idx, "hit")
			res.Seq = seq
			res.CacheHit = true
		} else {
			end(idx, "miss")
		}
	}

	if res.Seq == nil {
		idx := begin("parse")
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		seq, ok := parser.Parse(lx, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		end(idx, strconv.Itoa(len(seq))+" ops")
		if !ok {
			res.finishTiming(timer, bag)
			return res
		}
		res.Seq = seq
		if opts.Cache != nil {
			_ = cacheStore(opts.Cache, file, seq)
		}
	}

	idx := begin("eval")
	value, err := eval.Evaluate(res.Seq, eval.Options{Reporter: diag.BagReporter{Bag: bag}})
	end(idx, "")
	if err != nil {
		res.finishTiming(timer, bag)
		return res
	}

	res.Value = value
	res.OK = true
	res.finishTiming(timer, bag)
	return res
}

// finishTiming снимает отчёт и прикладывает его и в результат, и в Bag как
// OBS-диагностику, чтобы --format=json получил тайминги бесплатно.
func (r *EvalResult) finishTiming(timer *observ.Timer, bag *diag.Bag) {
	if timer == nil {
		return
	}
	report := timer.Report()
	r.Timing = &report

	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: r.File.ID}, "pipeline timings")
	for _, p := range report.Phases {
		note := p.Name + " " + strconv.FormatFloat(p.DurationMS, 'f', 2, 64) + " ms"
		if p.Note != "" {
			note += " (" + p.Note + ")"
		}
		d = d.WithNote(source.Span{File: r.File.ID}, note)
	}
	bag.Add(d)
}
