// Package main provides localization for the vkbench CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Test and benchmark orchestration for the Vulkan Video codec binaries.": "Vulkan Videoコーデックバイナリのテストとベンチマークのオーケストレーション。",

		// Subcommand descriptions
		"Run the adaptive quantization quality benchmark.":            "適応量子化(AQ)品質ベンチマークを実行",
		"Run the decoder and encoder test suites.":                    "デコーダーとエンコーダーのテストスイートを実行",
		"Run encoder JSON profile tests.":                             "エンコーダーJSONプロファイルテストを実行",
		"Decode every bitstream in a directory back through the decoder.": "ディレクトリ内の全ビットストリームをデコーダーで再デコード",
		"Show version information.":                                   "バージョン情報を表示",

		// Runtime messages
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",
		"Checking remote connectivity...":   "リモート接続を確認中...",
		"Report saved to %s":                "レポートを %s に保存しました",
		"Decoding %d bitstreams from %s":    "%d 個のビットストリームを %s からデコード中",
		"No bitstream files found in %s":    "%s にビットストリームファイルが見つかりません",
		"vkbench version %s":                "vkbench バージョン %s",
		"Codec probe failed for %s: %s":     "%s のコーデック判定に失敗しました: %s",
	})
}
