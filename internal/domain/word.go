package domain

// Word is a dictionary entry of a language word list
type Word struct {
	ID            int64
	LanguageID    int64
	Number        int // ordinal position within the language word list
	Foreign       string
	Translation   string
	Transcription string
}

// StudyWord is an immutable snapshot composed at batch-fetch time: the
// word plus its review record as of the fetch. Discarded once the
// learner advances past it.
type StudyWord struct {
	Word
	Review *ReviewRecord // nil when the word was never reviewed
}

// HintType identifies which part of the answer a learner revealed
type HintType string

const (
	HintWord          HintType = "word"
	HintTranscription HintType = "transcription"
)
