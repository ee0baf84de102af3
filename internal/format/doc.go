// Package format is the StoryScript source formatter behind `storyc fmt`.
//
// Назначение: канонические отступы и пробелы поверх потока токенов уже
// корректного файла; `//` комментарии и одиночные пустые строки сохраняются.
// Не делает: переносов длинных строк, IO, проверки синтаксиса (это driver).
// Зависимости: internal/lexer, internal/source, internal/token.
package format
