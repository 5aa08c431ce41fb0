package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Generating scan sheet for %s":  "%s のスキャンシートを生成中...",
		"Output saved to %s":            "出力を %s に保存しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Probe stage
		"Probing media file":       "メディアファイルを解析中",
		"Using %s backend for %s":  "%s バックエンドを %s に使用します",
		"Media probed: %d video, %d audio, %d subtitle streams":    "メディア解析完了: 映像 %d, 音声 %d, 字幕 %d ストリーム",
		"ffprobe not found, falling back to MP4 container parsing": "ffprobe が見つかりません。MP4 コンテナ解析にフォールバックします",

		// Snapshot stage
		"Extracting %d frames with %d workers": "%d フレームを %d ワーカーで抽出中",
		"Extracted frame %d/%d at %s":          "フレーム抽出 %d/%d (%s)",
		"Extraction completed":                 "フレーム抽出が完了しました",

		// Header stage
		"Building header":     "ヘッダーを構築中",
		"Header built: %dx%d": "ヘッダー構築完了: %dx%d",

		// Compose stage
		"Composing sheet: %dx%d canvas, %dx%d grid": "シートを合成中: %dx%d キャンバス, %dx%d グリッド",
		"Resizing output to 1/%d":  "出力を 1/%d に縮小中",
		"Sheet composed: %d bytes": "シート合成完了: %d バイト",

		// Errors
		"Failed to probe media: %s":   "メディアの解析に失敗しました: %s",
		"Failed to extract frame: %s": "フレームの抽出に失敗しました: %s",
		"Failed to write output: %s":  "出力の書き込みに失敗しました: %s",
	})
}
