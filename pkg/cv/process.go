package cv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTextExtracted — из файла не удалось извлечь текст.
// Восстановимо: пользователю стоит предложить другой файл.
var ErrNoTextExtracted = errors.New("no text extracted from file")

// CleanText схлопывает переводы строк, табуляцию, маркеры списков и
// лишние пробелы, оставляя одну строку для дальнейшей очистки.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	cleaned := strings.Join(kept, " ")
	cleaned = strings.ReplaceAll(cleaned, "●", "")
	cleaned = strings.ReplaceAll(cleaned, "•", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return strings.TrimSpace(cleaned)
}

// Process — полный конвейер границы загрузки: извлечение + очистка.
// Пустой результат извлечения поднимается как ErrNoTextExtracted,
// пустая строка никогда не уходит в эмбеддинг молча.
func Process(filename string, data []byte) (string, error) {
	raw, err := ExtractText(filename, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoTextExtracted, err)
	}
	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", ErrNoTextExtracted
	}
	return cleaned, nil
}
