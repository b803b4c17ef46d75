package domain

const titleMaxRunes = 50

// TitleFromContent deriva un título a partir del primer mensaje del usuario:
// los primeros 50 caracteres y "..." si hubo recorte.
func TitleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxRunes {
		return content
	}
	return string(runes[:titleMaxRunes]) + "..."
}
