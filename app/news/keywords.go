package news

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the keyword configuration driving relevance classification.
// The category lists feed the co-occurrence rule (technology plus one of
// startup/investment/company); Extra is a flat list matched on its own.
// The lists mix Russian and English entries and are configuration data,
// not part of the algorithm.
type Lexicon struct {
	Startup    []string `yaml:"startup"`
	Investment []string `yaml:"investment"`
	Technology []string `yaml:"technology"`
	Company    []string `yaml:"company"`
	Extra      []string `yaml:"extra"`
}

// LoadLexicon reads a lexicon from a YAML file. An empty path yields the
// built-in default lexicon.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file: %w", err)
	}

	if err := lex.validate(); err != nil {
		return nil, fmt.Errorf("invalid keywords file %s: %w", path, err)
	}

	return &lex, nil
}

func (l *Lexicon) validate() error {
	if len(l.Technology) == 0 {
		return fmt.Errorf("technology keyword list is empty")
	}
	if len(l.Startup) == 0 && len(l.Investment) == 0 && len(l.Company) == 0 {
		return fmt.Errorf("no startup, investment or company keywords configured")
	}
	return nil
}

// DefaultLexicon returns the compiled-in keyword lists.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Startup: []string{
			"стартап", "стартапы", "startup", "startups", "единорог", "unicorn",
			"акселератор", "инкубатор", "accelerator", "incubator", "венчур", "venture",
		},
		Investment: []string{
			"инвестиции", "инвестиция", "investment", "investments", "финансирование",
			"funding", "раунд", "round", "серия", "series", "капитал", "capital",
			"фонд", "fund", "инвестор", "investor", "спонсор", "sponsor",
		},
		Technology: []string{
			"технологии", "технология", "technology", "tech", "искусственный интеллект",
			"ИИ", "AI", "блокчейн", "blockchain", "криптовалюта", "crypto", "финтех",
			"fintech", "цифровизация", "digital", "IT", "айти", "программирование",
			"programming", "разработка", "development", "софт", "software", "приложение",
			"application", "данные", "data", "машинное обучение", "machine learning",
			"нейросеть", "neural network", "автоматизация", "automation", "робот",
			"robot", "инновации", "innovation", "интернет вещей", "IoT", "облако",
			"cloud", "кибербезопасность", "cybersecurity", "VR", "AR", "метавселенная",
			"metaverse", "Web3", "DeFi", "NFT", "токен", "token",
		},
		Company: []string{
			"компания", "компании", "company", "компаний", "корпорация", "corporation",
			"фирма", "firm", "предприятие", "enterprise", "организация", "organization",
			"бизнес", "business", "предпринимательство", "entrepreneurship",
		},
		Extra: []string{
			"искусственный интеллект", "блокчейн", "криптовалюта", "криптовалюты",
			"финтех", "цифровая трансформация", "мобильное приложение", "веб-разработка",
			"большие данные", "нейросеть", "нейросети", "венчурный", "технопарк",
			"хакатон", "IT-конференция", "цифровая экономика", "электронная коммерция",
			"e-commerce", "платежная система", "банковские технологии",
			"финансовые технологии", "regtech", "insurtech", "proptech", "edtech",
			"healthtech", "agritech", "cleantech", "greentech", "умный город",
			"5G", "облачные технологии", "микросервисы", "контейнеризация", "DevOps",
			"защита данных", "персональные данные", "электронная подпись",
			"цифровая идентификация", "биометрия", "виртуальная реальность",
			"дополненная реальность", "центральная азия", "казахстан", "узбекистан",
			"кыргызстан", "таджикистан", "туркменистан", "алматы", "астана",
			"ташкент", "бишкек", "душанбе", "ашхабад",
			"artificial intelligence", "machine learning", "digital transformation",
			"mobile app", "web development", "big data", "neural network",
			"smart city", "internet of things", "cloud technology", "microservices",
			"containerization", "data protection", "virtual reality",
			"augmented reality", "central asia", "kazakhstan", "uzbekistan",
			"kyrgyzstan", "tajikistan", "turkmenistan", "almaty", "astana",
			"tashkent", "bishkek", "dushanbe", "ashgabat",
		},
	}
}
