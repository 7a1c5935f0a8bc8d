package interview

import (
	"fmt"
	"strings"
)

// Delimiter separates questions and answers in generated text. Both the
// questionnaire request and the answer request instruct the model to use
// it; output that ignores it is a contract violation, not a parse problem
// to repair.
const Delimiter = "\n\n"

const questionnairePrompt = `You are an experienced market researcher, tasked with creating a brief but thorough questionnaire. The questionnaire will be presented to a group of market research participants, concerning the following product:
%s
Write a questionnaire consisting only of open questions, with the purpose of the questionnaire being to assess consumer intent of the product as it is now. Questions should cover the following subcategories: %s. Omit questions about the interviewee, their demographic data is already known. Your output should consist only of the questions, and all questions should be separated by two newlines.`

const elaboratePrompt = `Turn the following biography into a more complete biography, worded in second person as someone to impersonate (You are impersonating...). Optimise the text to function as a system prompt for an llm, such that the llm will behave as closely as possible to a person with the given bio. As output, provide only the raw system prompt. Bio:
%s`

const answerPrompt = `Thank you for taking the time to fill out this questionnaire, concerning the following product:
%s
Please fill out the following questions:
%s
Please provide only your final answers, separated by two newlines.`

func buildQuestionnairePrompt(concept string, categories []string) string {
	return fmt.Sprintf(questionnairePrompt, concept, strings.Join(categories, ", "))
}

func buildElaboratePrompt(biography string) string {
	return fmt.Sprintf(elaboratePrompt, biography)
}

func buildAnswerPrompt(concept, questionnaire string) string {
	return fmt.Sprintf(answerPrompt, concept, questionnaire)
}
