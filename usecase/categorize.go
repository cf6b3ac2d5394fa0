package usecase

import "strings"

const (
	CategoryTechnology = "technology"
	CategoryOther      = "other"
)

// techKeywords flags a bookmark as technology-related when any of them
// appears in the raw text. Matching is case-insensitive substring search,
// which also covers the Japanese terms (no word boundaries there).
var techKeywords = []string{
	"python", "javascript", "typescript", "golang", "rust",
	"programming", "code", "coding", "developer", "software", "engineer",
	"tech", "web", "api", "data", "database", "sql",
	"github", "gitlab", "git",
	"docker", "kubernetes", "container", "serverless",
	"cloud", "aws", "azure", "gcp", "devops", "infra",
	"security", "cybersecurity", "encryption",
	"machine learning", "deep learning", "llm", "neural",
	"frontend", "backend", "fullstack",
	"react", "vue", "next.js", "node.js",
	"プログラミング", "エンジニア", "コード", "セキュリティ",
	"機械学習", "クラウド", "データベース", "インフラ",
	"フロントエンド", "バックエンド", "アルゴリズム",
}

// techTerms is the vocabulary used by the tech-only top-words view. Unlike
// techKeywords these are matched against whole tokens.
var techTerms = map[string]struct{}{}

func init() {
	terms := []string{
		"python", "javascript", "typescript", "go", "golang", "rust",
		"java", "kotlin", "swift", "ruby", "php", "elixir", "scala",
		"react", "vue", "angular", "svelte", "django", "flask", "rails",
		"docker", "kubernetes", "terraform", "ansible",
		"aws", "azure", "gcp", "devops", "serverless",
		"sql", "nosql", "postgres", "redis", "sqlite",
		"api", "rest", "graphql", "grpc", "websocket",
		"http", "https", "tls", "ssl", "oauth",
		"git", "github", "gitlab", "ci", "cd",
		"linux", "wasm", "webassembly",
		"ai", "ml", "llm", "rag",
		"security", "cybersecurity", "encryption",
		"マイクロサービス", "コンテナ", "サーバーレス", "インフラ",
		"クラウド", "データベース", "セキュリティ", "認証", "暗号",
		"機械学習", "人工知能", "ディープラーニング", "データサイエンス",
		"アルゴリズム", "アーキテクチャ", "リファクタリング",
		"プログラミング", "エンジニア", "コード", "デバッグ", "テスト",
	}
	for _, t := range terms {
		techTerms[t] = struct{}{}
	}
}

// Categorize labels raw bookmark text as technology-related or not.
func Categorize(text string) string {
	if text == "" {
		return CategoryOther
	}

	lower := strings.ToLower(text)
	for _, keyword := range techKeywords {
		if strings.Contains(lower, keyword) {
			return CategoryTechnology
		}
	}
	return CategoryOther
}

// IsTechTerm reports whether a token belongs to the tech vocabulary.
func IsTechTerm(token string) bool {
	_, ok := techTerms[strings.ToLower(token)]
	return ok
}
