package service

import (
	"log"
	"strings"
	"unicode/utf8"
)

// logChatExchange 输出对话分类结果，便于排查规则命中情况；用户原文只记录长度
func logChatExchange(username, intent, message string) {
	trimmed := strings.TrimSpace(message)
	runeCount := utf8.RuneCountInString(trimmed)
	if runeCount == 0 {
		log.Printf("[chat] %s: intent=%s <empty>", username, intent)
		return
	}
	log.Printf("[chat] %s: intent=%s (runes=%d)", username, intent, runeCount)
}
