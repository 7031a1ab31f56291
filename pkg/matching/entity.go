package matching

import "errors"

// ErrJobNotFound — объяснение запрошено для неизвестного reference.
var ErrJobNotFound = errors.New("job not found in vector index")

// Match — одна вакансия в выдаче поиска. Живёт в рамках запроса,
// после ответа не сохраняется.
type Match struct {
	JobReference    string  `json:"jobReference"`
	JobTitle        string  `json:"jobTitle"`
	CompanyName     string  `json:"companyName"`
	City            string  `json:"city"`
	URL             string  `json:"url,omitempty"`
	SimilarityScore float64 `json:"similarityScore"`
	MatchPercentage float64 `json:"matchPercentage"`
	JobDescription  string  `json:"jobDescription"`
	Rank            int     `json:"rank"`
	Distance        float64 `json:"distance"`
}

// WordImportance — вклад одного слова CV в матч.
// Положительный Importance: без слова расстояние растёт, слово помогает.
type WordImportance struct {
	Word             string  `json:"word"`
	Importance       float64 `json:"importance"`
	BaselineDistance float64 `json:"baselineDistance"`
	ModifiedDistance float64 `json:"modifiedDistance"`
}

// Explanation — результат пертурбационного анализа для пары CV/вакансия.
type Explanation struct {
	JobReference       string           `json:"jobReference"`
	JobTitle           string           `json:"jobTitle"`
	BaselineDistance   float64          `json:"baselineDistance"`
	BaselineSimilarity float64          `json:"baselineSimilarity"`
	TopPositiveWords   []WordImportance `json:"topPositiveWords"`
	TopNegativeWords   []WordImportance `json:"topNegativeWords"`
	TotalWords         int              `json:"totalWords"`
	HelpfulWords       int              `json:"helpfulWords"`
	HarmfulWords       int              `json:"harmfulWords"`
	NeutralWords       int              `json:"neutralWords"`
}

// Stats — состояние коллекции вакансий.
type Stats struct {
	TotalJobs  int    `json:"totalJobs"`
	Collection string `json:"collection"`
}
