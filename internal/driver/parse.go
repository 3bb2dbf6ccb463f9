package driver

import (
	"rpncalc/internal/diag"
	"rpncalc/internal/lexer"
	"rpncalc/internal/parser"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Seq     rpn.Sequence
	Bag     *diag.Bag
	// OK — выражение распознано целиком; Bag может содержать причины отказа
	OK bool
	// CacheHit — последовательность взята из кэша, лексер и парсер не запускались
	CacheHit bool
}

// Parse загружает файл и прогоняет его через лексер и парсер.
// cache может быть nil; при попадании парсинг пропускается.
func Parse(path string, maxDiagnostics int, cache *SeqCache) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fileID, maxDiagnostics, cache), nil
}

// ParseSource парсит буфер в памяти.
func ParseSource(name string, content []byte, maxDiagnostics int, cache *SeqCache) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseFile(fs, fileID, maxDiagnostics, cache)
}

func parseFile(fs *source.FileSet, fileID source.FileID, maxDiagnostics int, cache *SeqCache) *ParseResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	res := &ParseResult{FileSet: fs, File: file, Bag: bag}

	// Кэш ключуется содержимым, так что попадание валидно даже при
	// переименованном файле.
	if cache != nil {
		if seq, ok := cacheLookup(cache, file); ok {
			res.Seq = seq
			res.OK = true
			res.CacheHit = true
			return res
		}
	}

	lx := lexer.New(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	seq, ok := parser.Parse(lx, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	res.Seq = seq
	res.OK = ok

	if ok && cache != nil {
		// ошибка записи кэша не делает разбор неудачным
		_ = cacheStore(cache, file, seq)
	}
	return res
}
