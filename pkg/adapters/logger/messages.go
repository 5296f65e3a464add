package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Benchmark component
		"Extracting %d reference frames": "%d フレームの参照データを抽出中",
		"[%d/%d] Encoding: %s":           "[%d/%d] エンコード中: %s",
		"Encoded %d bytes in %.1fs":      "%d バイトを %.1f秒でエンコードしました",
		"Encode failed: %s":              "エンコードに失敗しました: %s",

		// Quality component
		"PSNR output not recognized, recording zeros": "PSNR出力を認識できないため、ゼロを記録します",
		"VMAF output not recognized, recording zero":  "VMAF出力を認識できないため、ゼロを記録します",
	})
}
