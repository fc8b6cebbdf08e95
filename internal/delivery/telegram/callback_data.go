package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz     = "quiz"
	actionSettings = "settings"
)

// Quiz sub-actions. Question-bound actions carry the question index so a
// click on a stale message cannot change another question.
const (
	quizSelect  = "sel"  // quiz:sel:<question>:<option>
	quizCheck   = "chk"  // quiz:chk:<question>
	quizReveal  = "rev"  // quiz:rev:<question>
	quizPrev    = "prev" // quiz:prev
	quizNext    = "next" // quiz:next
	quizFinish  = "fin"  // quiz:fin
	quizSummary = "sum"  // quiz:sum
	quizNew     = "new"  // quiz:new
)

// Settings sub-actions.
const (
	settingsMenu     = "menu"
	settingsMode     = "mode"
	settingsMax      = "max"
	settingsLanguage = "lang"
	settingsCategory = "cat"
	settingsSeed     = "seed"
)

const (
	categoryAll = "all"
	seedClear   = "clear"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// sub returns the first parameter, the sub-action.
func (cd callbackData) sub() string {
	if len(cd.Params) == 0 {
		return ""
	}
	return cd.Params[0]
}

// intParam parses parameter i as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func buildQuizCallback(sub string, values ...int) string {
	params := []string{sub}
	for _, v := range values {
		params = append(params, strconv.Itoa(v))
	}
	return callbackData{Action: actionQuiz, Params: params}.encode()
}

func buildSelectCallback(questionIndex, optionIndex int) string {
	return buildQuizCallback(quizSelect, questionIndex, optionIndex)
}

func buildCheckCallback(questionIndex int) string {
	return buildQuizCallback(quizCheck, questionIndex)
}

func buildRevealCallback(questionIndex int) string {
	return buildQuizCallback(quizReveal, questionIndex)
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}
