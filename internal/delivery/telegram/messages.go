// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/exam-quiz-bot/internal/service"
)

// Error messages.
const (
	msgQuizUnavailable      = "Quiz başlatılamadı, lütfen daha sonra tekrar deneyin."
	msgNoAvailableQuestions = "Bu seçim için soru bulunamadı."
	msgUnknownCategory      = "Böyle bir kategori yok. /categories ile listeyi görebilirsiniz."
	msgQuizExpired          = "Bu quiz artık geçerli değil. Yeni bir quiz için /quiz yazın."
	msgAlreadyAnswered      = "Bu soru zaten cevaplandı."
	msgStatsUnavailable     = "İstatistikler alınamadı, lütfen daha sonra tekrar deneyin."
	msgInternalError        = "Bir şeyler ters gitti. Lütfen daha sonra tekrar deneyin."
	msgUnknownCommand       = "Bilinmeyen komut. Komut listesi için /help yazın."
)

const msgResetDone = "🗑 Quiz geçmişiniz ve istatistikleriniz silindi."

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Sınav Quiz Botu"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Ders slaytlarından hazırlanmış çoktan seçmeli sorularla kendinizi test edin."))
	sb.WriteString("\n\n")
	sb.WriteString(helpMessage())

	return sb.String()
}

func helpMessage() string {
	lines := []string{
		"/quiz — tüm sorulardan karışık bir quiz başlat",
		"/quiz 7 — yalnızca Slayt 7 sorularıyla quiz başlat",
		"/categories — kategorileri ve soru sayılarını göster",
		"/stats — doğru ve yanlış cevap istatistikleri",
		"/reset — quiz geçmişini ve istatistikleri sil",
		"/help — bu mesaj",
	}
	return md(strings.Join(lines, "\n"))
}

// formatCategories lists categories with their question counts.
func formatCategories(categories []service.CategoryCount) string {
	var sb strings.Builder
	sb.WriteString(bold("📚 Kategoriler"))
	sb.WriteString("\n\n")

	total := 0
	for _, c := range categories {
		sb.WriteString(md(fmt.Sprintf("• %s: %d soru", c.Name, c.Count)))
		sb.WriteString("\n")
		total += c.Count
	}

	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Toplam: %d soru", total)))
	return sb.String()
}

func buildQuizStartMessage(category string, total int) string {
	scope := "Tüm kategoriler"
	if category != "" {
		scope = category
	}

	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s",
		bold("🎯 Quiz başlıyor!"),
		md("Kapsam:"),
		bold(scope),
		md("Soru sayısı:"),
		bold(fmt.Sprintf("%d", total)),
	)
}

// formatQuizQuestion renders the question with lettered options.
func formatQuizQuestion(q *entities.Question, currentNum, totalQuestions int) string {
	var sb strings.Builder

	header := fmt.Sprintf("Soru %d / %d", currentNum, totalQuestions)
	if q.Code != "" {
		header += " · " + q.Code
		if q.FPTag != "" {
			header += " (" + q.FPTag + ")"
		}
	}
	sb.WriteString(md(header))
	if q.Category != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(q.Category))
	}
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.Text))
	sb.WriteString("\n\n")

	for i, opt := range q.Options {
		sb.WriteString(md(fmt.Sprintf("%s) %s", entities.OptionLetter(i), opt)))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatAnswerFeedback formats feedback for a quiz answer (MarkdownV2 safe).
func formatAnswerFeedback(q *entities.Question, answer *entities.QuizAnswer) string {
	var sb strings.Builder

	if answer.IsCorrect {
		sb.WriteString(md("✅ Doğru!"))
	} else {
		sb.WriteString(md(fmt.Sprintf("❌ Yanlış. Sizin cevabınız: %s", entities.OptionLetter(answer.SelectedIdx))))
		sb.WriteString("\n")
		sb.WriteString(md("Doğru cevap: "))
		sb.WriteString(bold(fmt.Sprintf("%s) %s", entities.OptionLetter(q.CorrectIndex), q.CorrectOption())))
	}

	sb.WriteString("\n\n")
	sb.WriteString(italic(q.Explanation))
	return sb.String()
}

// formatQuizResult formats quiz results (MarkdownV2 safe).
func formatQuizResult(session *entities.QuizSession) string {
	percentage := session.Percentage()

	emoji, message := "📚", "Slaytları tekrar gözden geçirmenizde fayda var."
	switch {
	case percentage >= 90:
		emoji, message = "🌟", "Mükemmel sonuç!"
	case percentage >= 70:
		emoji, message = "👍", "İyi sonuç!"
	case percentage >= 50:
		emoji, message = "💪", "Fena değil, devam edin!"
	}

	return fmt.Sprintf(
		"%s %s\n\n%s %s\n%s\n\n%s",
		md(emoji),
		md("Quiz tamamlandı!"),
		md("Sonuç:"),
		bold(fmt.Sprintf("%d/%d (%.0f%%)", session.CorrectAnswers, session.TotalQuestions, percentage)),
		md(buildProgressBar(session.CorrectAnswers, session.TotalQuestions, 10)),
		md(message),
	)
}

func formatStats(stats entities.AnswerStats) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s\n%s",
		bold("📊 İstatistikler"),
		md(fmt.Sprintf("Toplam cevap: %d", stats.Total)),
		md(fmt.Sprintf("✅ Doğru: %d", stats.Correct)),
		md(fmt.Sprintf("❌ Yanlış: %d", stats.Wrong)),
		md(fmt.Sprintf("🎯 Başarı: %.1f%%", stats.Accuracy())),
	)
}

func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := current * length / total
	if filled > length {
		filled = length
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}
