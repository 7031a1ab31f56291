package nlp

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	reTags     = regexp.MustCompile(`<[^>]+>`)
	reURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	reEmail    = regexp.MustCompile(`\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`)
	rePhoneFR  = regexp.MustCompile(`(?:\+33|0)[1-9](?:[.\-\s]?\d{2}){4}`)
	rePhoneAny = regexp.MustCompile(`(\+\d{1,3}\s?)?\(?\d{1,4}\)?[\s.-]?\d{1,4}[\s.-]?\d{1,9}`)
	reBullets  = regexp.MustCompile(`[●•▪▫◦‣⁃]`)
	reNonWord  = regexp.MustCompile(`[^\p{L}\p{N}_\s\-\+\#\.]`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reNumeric  = regexp.MustCompile(`^\d+$`)
)

// StripHTML декодирует HTML-сущности, убирает CDATA-обёртки и теги,
// сохраняя внутренний текст. Пробелы схлопываются до одного.
func StripHTML(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "<![CDATA[", " ")
	s = strings.ReplaceAll(s, "]]>", " ")
	s = reTags.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeJob готовит текст вакансии к эмбеддингу: описания приходят из
// HTML API, поэтому сначала убирается разметка, затем применяется общий
// пайплайн с набором шумовых слов вакансий.
func NormalizeJob(raw string) string {
	return NormalizeWith(StripHTML(raw), jobNoise)
}

// NormalizeCV готовит извлечённый текст резюме к эмбеддингу.
func NormalizeCV(raw string) string {
	return NormalizeWith(raw, cvNoise)
}

// NormalizeWith выполняет общий пайплайн очистки. Порядок шагов важен:
// каждый следующий работает по результату предыдущего.
//   1. нижний регистр
//   2. удаление URL, email и телефонов (французский и общий формат)
//   3. удаление маркеров списков и прочих не-словесных символов
//   4. токенизация и фильтрация (короткие, числовые, стоп-слова, шум)
//   5. схлопывание идущих подряд одинаковых токенов
// Пустой вход даёт пустой выход, ошибок не бывает.
func NormalizeWith(raw string, noise map[string]struct{}) string {
	if raw == "" {
		return ""
	}
	text := strings.ToLower(raw)

	text = reURL.ReplaceAllString(text, "")
	text = reEmail.ReplaceAllString(text, "")
	text = rePhoneFR.ReplaceAllString(text, "")
	text = rePhoneAny.ReplaceAllString(text, "")

	text = reBullets.ReplaceAllString(text, "")
	text = reNonWord.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	prev := ""
	for _, w := range words {
		w = strings.Trim(w, ".-+#")
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if reNumeric.MatchString(w) {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		if noise != nil {
			if _, ok := noise[w]; ok {
				continue
			}
		}
		if w == prev {
			continue
		}
		kept = append(kept, w)
		prev = w
	}
	return strings.Join(kept, " ")
}

// Tokens разбивает текст по пробелам, срезая пунктуацию по краям токена.
// Остаются только токены длиннее двух символов. Используется пертурбационным
// анализом, где полный пайплайн очистки намеренно не применяется.
func Tokens(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, unicode.IsPunct)
		if utf8.RuneCountInString(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}
