package generation

import "fmt"

// ChatSystemInstruction роль ассистента в свободном чате.
const ChatSystemInstruction = "Você é um assistente de estudos especializado em ENEM e residência médica."

func systemInstruction(subject, examType string) string {
	return fmt.Sprintf("Você é um especialista em %s para %s e cria questões de múltipla escolha. "+
		"Formate a saída como um objeto JSON com as chaves 'question_text', 'options' (uma lista de strings) "+
		"e 'correct_answer' (uma string que corresponde a uma das opções).", subject, examType)
}

func userInstruction(topic string) string {
	return fmt.Sprintf("Crie uma questão de múltipla escolha sobre %s.", topic)
}
