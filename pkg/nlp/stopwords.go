package nlp

// newSet builds a lookup set from words.
func newSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// stopwords объединяет частотные французские и английские слова,
// которые не несут смысла для эмбеддинга.
var stopwords = newSet(
	// французский
	"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou", "mais",
	"dans", "sur", "pour", "par", "avec", "sans", "sous", "vers", "chez",
	"est", "sont", "être", "avoir", "fait", "faire", "plus", "moins",
	"que", "qui", "quoi", "dont", "cette", "ces", "son", "ses", "leur",
	"leurs", "nous", "vous", "ils", "elles", "elle", "votre", "notre",
	"nos", "vos", "aux", "ainsi", "donc", "alors", "tout", "tous", "toute",
	"toutes", "autre", "autres", "entre", "aussi", "comme", "afin",
	// английский
	"the", "and", "but", "for", "nor", "not", "are", "was", "were", "been",
	"being", "have", "has", "had", "having", "does", "did", "doing",
	"will", "would", "should", "could", "can", "may", "might", "must",
	"this", "that", "these", "those", "with", "within", "from", "into",
	"onto", "about", "above", "below", "between", "through", "during",
	"before", "after", "again", "further", "then", "once", "here", "there",
	"when", "where", "why", "how", "all", "any", "both", "each", "few",
	"more", "most", "other", "some", "such", "only", "own", "same", "than",
	"too", "very", "you", "your", "yours", "our", "ours", "their", "theirs",
	"they", "them", "what", "which", "who", "whom", "while", "also",
)

// jobNoise — шаблонные слова вакансий, одинаковые во всех объявлениях.
var jobNoise = newSet(
	"poste", "offre", "emploi", "job", "position", "role", "opportunity",
	"candidat", "candidate", "recherche", "recherchons", "looking", "seeking",
	"team", "équipe", "entreprise", "company", "société", "startup",
	"business", "organization", "description", "profil", "profile",
	"mission", "missions", "responsabilités", "responsibilities", "tâches",
	"tasks", "activités", "activities", "skills", "compétences",
	"qualifications", "requirements", "expérience", "experience",
)

// cvNoise — заголовки секций резюме (Education, Expérience и т.п.).
var cvNoise = newSet(
	"curriculum", "vitae", "resume", "résumé",
	"education", "formation", "diplôme", "diplômes",
	"experience", "expérience", "expériences", "professionnelle",
	"skills", "compétences", "languages", "langues",
	"contact", "coordonnées", "références", "references",
	"hobbies", "loisirs", "intérêts", "interests",
	"profil", "profile", "summary", "objectif", "objective",
	"certifications", "certificats", "projets", "projects",
)
