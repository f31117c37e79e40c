// Package fuzztests houses Go fuzz harnesses for the scanner and the token
// cache. Their goal is to smoke test robustness: no panics, no hangs and no
// broken stream invariants on arbitrary bytes.
//
// Назначение: гонять произвольные байты через lexer.Scan, lexer.Lexer и
// driver.DiskCache и проверять инварианты потока токенов.
//
// Не делает: генерацию корпусов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/diag,
// internal/driver, internal/testkit.

package fuzztests
