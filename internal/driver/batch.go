package driver

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BatchItem содержит результат вычисления одной строки батч-файла.
type BatchItem struct {
	Index  int    // позиция в файле среди непустых строк
	Line   uint32 // 1-based номер строки в исходном файле
	Expr   string // исходный текст выражения
	Result *EvalResult
}

// EvalBatch вычисляет файл с выражениями, по одному на строку, параллельно.
// Пустые строки и строки, начинающиеся с '#', пропускаются. Порядок
// результатов детерминирован и совпадает с порядком строк.
func EvalBatch(ctx context.Context, path string, jobs int, opts EvalOptions) ([]BatchItem, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	type job struct {
		line uint32
		expr string
	}
	var jobsList []job
	for i, raw := range strings.Split(string(content), "\n") {
		expr := strings.TrimSpace(raw)
		if expr == "" || strings.HasPrefix(expr, "#") {
			continue
		}
		jobsList = append(jobsList, job{line: uint32(i + 1), expr: expr})
	}
	if len(jobsList) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]BatchItem, len(jobsList))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(jobsList)))

	for i, j := range jobsList {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			name := fmt.Sprintf("%s:%d", path, j.line)
			results[i] = BatchItem{
				Index:  i,
				Line:   j.line,
				Expr:   j.expr,
				Result: EvalSource(name, []byte(j.expr), opts),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FailedCount возвращает число элементов, не дошедших до значения.
func FailedCount(items []BatchItem) int {
	failed := 0
	for _, item := range items {
		if item.Result == nil || !item.Result.OK {
			failed++
		}
	}
	return failed
}
