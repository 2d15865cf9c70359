package ai

import (
	"fmt"
	"unicode/utf8"
)

const rewritePromptTmpl = `Kamu adalah jurnalis senior portal berita Indonesia "Menit Live" (menit.live).
Tugasmu: tulis ulang berita berikut menjadi artikel BARU yang sepenuhnya original.

ATURAN KETAT:
1. Parafrase TOTAL — tidak boleh ada kalimat yang sama persis dengan sumber
2. Gaya bahasa netral, formal tapi mudah dipahami (seperti portal berita Indonesia)
3. Panjang artikel: 600-800 kata
4. Tambahkan sudut pandang dampak untuk Indonesia jika relevan
5. Struktur: paragraf pembuka yang kuat, lalu beberapa subjudul (## Heading), dan penutup
6. Jangan gunakan frontmatter/metadata, langsung tulis konten artikelnya saja
7. JANGAN tulis "Sumber:" atau "Referensi:" di dalam artikel
8. Gunakan Bahasa Indonesia baku yang baik dan benar

BERITA SUMBER (%s):
Judul: %s

Konten:
%s

Tulis artikelnya sekarang:`

const titlePromptTmpl = `Buat judul berita baru yang menarik dan berbeda dari judul asli. Aturan:
- Berbeda dari judul asli tapi tetap akurat dengan isi artikel
- Menarik dan informatif (bukan clickbait menipu)
- Bahasa Indonesia, 8-15 kata
- Tanpa tanda kutip di awal/akhir

Judul asli: %s
Isi singkat: %s

Tulis HANYA judul baru (1 baris saja):`

const descriptionPromptTmpl = `Buat deskripsi/ringkasan singkat (1-2 kalimat, maksimal 160 karakter) untuk artikel berita ini.
Harus informatif dan menarik untuk SEO. Bahasa Indonesia.

Judul: %s
Isi: %s

Tulis HANYA deskripsi (1-2 kalimat, tanpa tanda kutip):`

// RewritePrompt builds the total-paraphrase instruction for one source
// article.
func RewritePrompt(title, content, sourceName string) string {
	return fmt.Sprintf(rewritePromptTmpl, sourceName, title, content)
}

// TitlePrompt builds the headline generation instruction from the source
// title and the opening of the rewritten body.
func TitlePrompt(sourceTitle, body string) string {
	return fmt.Sprintf(titlePromptTmpl, sourceTitle, head(body, 300))
}

// DescriptionPrompt builds the SEO summary instruction.
func DescriptionPrompt(title, body string) string {
	return fmt.Sprintf(descriptionPromptTmpl, title, head(body, 500))
}

// head returns at most the first max bytes of s, cut back to a rune
// boundary so multibyte characters are never split.
func head(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
