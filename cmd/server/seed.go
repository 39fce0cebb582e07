package main

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
)

// seedCatalog populates the shared achievement and lesson catalogs. It is
// idempotent: achievements are keyed by name, and lessons are only inserted
// into an empty table so operator edits survive restarts.
func seedCatalog(ctx context.Context, db *gorm.DB) error {
	for _, a := range catalogAchievements() {
		if err := repo.SeedAchievement(ctx, db, a); err != nil {
			return fmt.Errorf("seed achievement %q: %w", a.Name, err)
		}
	}

	n, err := repo.CountLessons(ctx, db)
	if err != nil {
		return fmt.Errorf("count lessons: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, l := range starterLessons() {
		l := l
		if err := repo.CreateLesson(ctx, db, &l); err != nil {
			return fmt.Errorf("seed lesson %q: %w", l.Title, err)
		}
	}
	return nil
}

func catalogAchievements() []domain.Achievement {
	return []domain.Achievement{
		{Name: "First Lesson", Description: "Complete your first lesson", Category: "lessons", Points: 10, Icon: "📚"},
		{Name: "Lesson Master", Description: "Complete 10 lessons", Category: "lessons", Points: 50, Icon: "🎓"},
		{Name: "Conversation Starter", Description: "Start your first conversation", Category: "conversations", Points: 15, Icon: "💬"},
		{Name: "Chatty", Description: "Have 25 conversations", Category: "conversations", Points: 75, Icon: "🗣️"},
		{Name: "Perfect Pronunciation", Description: "Score 90+ on a pronunciation test", Category: "pronunciation", Points: 30, Icon: "🎤"},
		{Name: "Pronunciation Pro", Description: "Score 90+ on 5 pronunciation tests", Category: "pronunciation", Points: 100, Icon: "🏆"},
		{Name: "Streak Master", Description: "Maintain a 7-day learning streak", Category: "consistency", Points: 40, Icon: "🔥"},
		{Name: "Dedicated Learner", Description: "Spend 10 hours learning", Category: "consistency", Points: 60, Icon: "⏱️"},
	}
}

// lessonContent is the structured body stored in the lessons.content JSON
// column. The shape matches what the lesson endpoints serve verbatim.
type lessonContent struct {
	Duration   int             `json:"duration,omitempty"`
	Vocabulary []lessonVocab   `json:"vocabulary"`
	Grammar    []lessonGrammar `json:"grammar"`
	Practice   []string        `json:"practice"`
}

type lessonVocab struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
	Example     string `json:"example"`
}

type lessonGrammar struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
}

func mustContent(c lessonContent) datatypes.JSON {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(b)
}

func starterLessons() []domain.Lesson {
	return []domain.Lesson{
		{
			ID:          "lesson-es-greetings-beginner",
			Title:       "Spanish Basics: Greetings",
			Description: "Learn common Spanish greetings and introductions.",
			Language:    "es",
			Level:       "beginner",
			Category:    "vocabulary",
			Order:       1,
			IsActive:    true,
			Content: mustContent(lessonContent{
				Duration: 15,
				Vocabulary: []lessonVocab{
					{Term: "hola", Translation: "hello", Example: "Hola, ¿cómo estás?"},
					{Term: "buenos días", Translation: "good morning", Example: "Buenos días, señor García."},
					{Term: "buenas noches", Translation: "good night", Example: "Buenas noches y hasta mañana."},
				},
				Grammar: []lessonGrammar{
					{
						Title:       "Formal vs informal greetings",
						Explanation: `Use "hola" in most situations. Use "buenos días" / "buenas noches" in more formal contexts or specific times of day.`,
						Examples:    []string{"Hola, Marta. (informal)", "Buenos días, profesor. (formal)"},
					},
				},
				Practice: []string{
					"Write three greetings you would use with friends.",
					"Write three greetings you would use with a teacher or boss.",
				},
			}),
		},
		{
			ID:          "lesson-en-present-simple-beginner",
			Title:       "English Grammar: Present Simple",
			Description: "Understand and practice the present simple tense in English.",
			Language:    "en",
			Level:       "beginner",
			Category:    "grammar",
			Order:       2,
			IsActive:    true,
			Content: mustContent(lessonContent{
				Duration: 20,
				Vocabulary: []lessonVocab{
					{Term: "usually", Translation: "in most cases / most of the time", Example: "I usually wake up at 7 a.m."},
					{Term: "never", Translation: "at no time", Example: "She never drinks coffee."},
				},
				Grammar: []lessonGrammar{
					{
						Title:       "Form of the present simple",
						Explanation: "Use the base form of the verb for all subjects except third person singular (he, she, it), where you add -s or -es.",
						Examples: []string{
							"I work in a bank.",
							"He works in a bank.",
							"They watch TV in the evening.",
							"She watches TV in the evening.",
						},
					},
				},
				Practice: []string{
					"Write five sentences about your daily routine using the present simple.",
					"Rewrite the sentences for a friend (he/she) and change the verb forms correctly.",
				},
			}),
		},
		{
			ID:          "lesson-fr-cafe-conversation",
			Title:       "French Conversation: At the Café",
			Description: "Practice ordering food and drinks in French at a café.",
			Language:    "fr",
			Level:       "beginner",
			Category:    "conversation",
			Order:       3,
			IsActive:    true,
			Content: mustContent(lessonContent{
				Duration: 15,
				Vocabulary: []lessonVocab{
					{Term: "un café", Translation: "a coffee", Example: "Je voudrais un café, s'il vous plaît."},
					{Term: "l’addition", Translation: "the bill", Example: "L’addition, s'il vous plaît."},
				},
				Grammar: []lessonGrammar{
					{
						Title:       `Polite requests with "je voudrais"`,
						Explanation: `"Je voudrais" (I would like) is a polite way to order in French.`,
						Examples: []string{
							"Je voudrais un jus d'orange, s'il vous plaît.",
							"Je voudrais un sandwich au fromage.",
						},
					},
				},
				Practice: []string{
					"Write a short dialogue between you and a waiter at a café.",
					"Record yourself reading the dialogue aloud.",
				},
			}),
		},
	}
}
