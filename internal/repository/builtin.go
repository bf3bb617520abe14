package repository

import "github.com/aliskhannn/exam-quiz-bot/internal/domain/entities"

var builtinQuestions = []entities.Question{
	{
		SequenceID:   1,
		Code:         "SN1-1",
		Category:     "Python",
		Text:         "Python'da bir listeyi tersine çevirmek için hangi metod kullanılır?",
		Options:      []string{"reverse()", "flip()", "invert()", "backward()"},
		CorrectIndex: 0,
		Explanation:  "Python'da liste.reverse() metodu listeyi yerinde tersine çevirir.",
	},
	{
		SequenceID:   2,
		Code:         "SN1-2",
		Category:     "Flask",
		Text:         "Flask framework'ünde route tanımlamak için hangi dekoratör kullanılır?",
		Options:      []string{"@route", "@app.route", "@flask.route", "@url"},
		CorrectIndex: 1,
		Explanation:  "@app.route dekoratörü Flask'ta URL yönlendirmesi için kullanılır.",
	},
	{
		SequenceID:   3,
		Code:         "SN1-3",
		Category:     "HTML",
		Text:         "HTML'de bir bağlantı oluşturmak için hangi etiket kullanılır?",
		Options:      []string{"<link>", "<href>", "<a>", "<url>"},
		CorrectIndex: 2,
		Explanation:  "<a> (anchor) etiketi HTML'de hyperlink oluşturmak için kullanılır.",
	},
}

// BuiltinQuestions returns a copy of the dataset served when no document is found.
func BuiltinQuestions() []entities.Question {
	out := make([]entities.Question, len(builtinQuestions))
	for i, q := range builtinQuestions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
