package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Sources holds the editorial data driving a run: which portal feeds to
// crawl, which keywords mark a story as hot, and how topics map to tags.
// It lives in its own YAML file so editors can tune it without touching
// application settings.
type Sources struct {
	Portals    []Portal   `yaml:"portals"`
	Keywords   []Keyword  `yaml:"hot_keywords"`
	Categories []Category `yaml:"categories"`
}

// Portal is one news source with its feed URLs.
type Portal struct {
	Name  string   `yaml:"name"`
	Feeds []string `yaml:"feeds"`
}

// Keyword is a weighted hotness term, matched case-insensitively as a
// substring of the title.
type Keyword struct {
	Term   string `yaml:"term"`
	Weight int    `yaml:"weight"`
}

// Category maps a keyword set to the tags it contributes.
type Category struct {
	Tags     []string `yaml:"tags"`
	Keywords []string `yaml:"keywords"`
}

// LoadSources reads the editorial YAML file at path. If the file does not
// exist, the embedded defaults are written there and returned.
func LoadSources(path string) (*Sources, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte(defaultSourcesContent), 0o644); err != nil {
			return nil, fmt.Errorf("writing default sources file: %w", err)
		}
		slog.Info("created default sources file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var src Sources
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	if len(src.Portals) == 0 {
		return nil, fmt.Errorf("sources file %q defines no portals", path)
	}

	for i := range src.Keywords {
		if src.Keywords[i].Weight == 0 {
			src.Keywords[i].Weight = 2
		}
	}

	return &src, nil
}

const defaultSourcesContent = `# Editorial data for the news pipeline: portal feeds, hotness keywords,
# and the category -> tags mapping used for automatic tag detection.

portals:
  - name: Detik
    feeds:
      - https://news.detik.com/berita/rss
      - https://inet.detik.com/rss
      - https://finance.detik.com/rss
      - https://hot.detik.com/rss
      - https://sport.detik.com/rss
  - name: Tribunnews
    feeds:
      - https://www.tribunnews.com/rss
  - name: Liputan6
    feeds:
      - https://feed.liputan6.com/rss/news
      - https://feed.liputan6.com/rss/tekno
  - name: CNN Indonesia
    feeds:
      - https://www.cnnindonesia.com/nasional/rss
      - https://www.cnnindonesia.com/ekonomi/rss
      - https://www.cnnindonesia.com/teknologi/rss
  - name: Tempo
    feeds:
      - https://rss.tempo.co/nasional

# Each matching term adds its weight to a title's hotness score.
hot_keywords:
  - {term: viral, weight: 2}
  - {term: breaking, weight: 2}
  - {term: hot, weight: 2}
  - {term: terkini, weight: 2}
  - {term: gempar, weight: 2}
  - {term: heboh, weight: 2}
  - {term: darurat, weight: 2}
  - {term: resmi, weight: 2}
  - {term: pertama, weight: 2}
  - {term: terbesar, weight: 2}
  - {term: terbaru, weight: 2}
  - {term: kontrovers, weight: 2}
  - {term: skandal, weight: 2}
  - {term: ditangkap, weight: 2}
  - {term: meninggal, weight: 2}
  - {term: bencana, weight: 2}
  - {term: ai, weight: 2}
  - {term: teknologi, weight: 2}
  - {term: samsung, weight: 2}
  - {term: apple, weight: 2}
  - {term: google, weight: 2}
  - {term: microsoft, weight: 2}
  - {term: presiden, weight: 2}
  - {term: menteri, weight: 2}
  - {term: dpr, weight: 2}
  - {term: korupsi, weight: 2}
  - {term: ekonomi, weight: 2}
  - {term: rupiah, weight: 2}

categories:
  - tags: [teknologi, digital]
    keywords: [teknologi, ai, robot, samsung, apple, google, microsoft,
               startup, gadget, smartphone, software, hardware, internet,
               cyber, digital, coding]
  - tags: [ekonomi, bisnis]
    keywords: [ekonomi, rupiah, saham, investasi, bisnis, bank, inflasi,
               pajak, ekspor, impor, tarif, keuangan, kripto, emas]
  - tags: [politik, pemerintahan]
    keywords: [politik, presiden, menteri, dpr, partai, pemilu, koalisi,
               oposisi, kabinet, pemerintah, undang-undang]
  - tags: [hukum, kriminal]
    keywords: [hukum, polisi, ditangkap, korupsi, pengadilan, jaksa,
               tersangka, terdakwa, pidana, kriminal, narkoba]
  - tags: [internasional, dunia]
    keywords: [internasional, dunia, global, amerika, china, rusia, eropa,
               jepang, perang, pbb, nato, trump, putin]
  - tags: [pendidikan, sosial]
    keywords: [pendidikan, sekolah, universitas, kampus, guru, siswa,
               mahasiswa, kurikulum, beasiswa]
  - tags: [olahraga, sport]
    keywords: [sepak, bola, liga, timnas, olimpiade, atlet, badminton,
               basket, motogp, f1]
`
