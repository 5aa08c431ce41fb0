// Package main provides localization for the scansheet CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Generate a video scan sheet with snapshots and metadata overlay": "スナップショットとメタデータを重ねた動画スキャンシートを生成",

		// Flags
		"Path to the video file": "動画ファイルのパス",
		"Layout preset to use":   "使用するレイアウトプリセット",
		"Index of the video stream to activate":            "有効化する映像ストリームのインデックス",
		"Directory holding global.yaml and layout presets": "global.yaml とレイアウトプリセットのディレクトリ",
		"Output PNG file path (default: derived from the filename format)": "出力PNGファイルパス（デフォルト: ファイル名フォーマットから生成）",
		"Directory for derived output names":            "生成された出力名の保存先ディレクトリ",
		"Parallel extraction workers (0 = one per CPU)": "並列抽出ワーカー数（0 = CPUごとに1つ）",
		"Save intermediate results for debugging":       "デバッグ用に中間結果を保存",
		"Directory for debug output":                    "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":          "ログレベル（debug, info, warn, error）",
		"Suppress all output":                           "すべての出力を抑制",
	})
}
