package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Export lifecycle
		"Starting export %s: %s":                    "エクスポート %s を開始: %s",
		"Video duration: %d ms":                     "動画の長さ: %d ms",
		"Planned %d captures (%s mode)":             "%d 件のキャプチャを計画しました (%s モード)",
		"Writing with %d workers":                   "%d ワーカーで書き込み中",
		"Captured %d/%d at %d ms":                   "キャプチャ %d/%d (%d ms)",
		"Export completed: %d succeeded, %d failed": "エクスポート完了: 成功 %d 件, 失敗 %d 件",
		"Export cancelled after %d/%d captures":     "%d/%d 件のキャプチャ後にエクスポートを中止しました",
		"Export cancelled before capture":           "キャプチャ開始前にエクスポートを中止しました",

		// Sources
		"Using %s backend":       "%s バックエンドを使用します",
		"Found ffmpeg at %s":     "ffmpeg を検出しました: %s",
		"Seeking to %d ms":       "%d ms へシーク中",
		"Probed %s: %s, %d ms":   "%s を解析: %s, %d ms",

		// Writer
		"Saved %s": "%s を保存しました",

		// CLI
		"Interrupted, cancelling export...": "中断されました。エクスポートを中止しています...",
		"Loaded settings from %s":           "%s から設定を読み込みました",
		"Settings saved to %s":              "設定を %s に保存しました",
		"Report saved to %s":                "レポートを %s に保存しました",
		"Screenshot saved to %s":            "スクリーンショットを %s に保存しました",

		// Warnings
		"Capture failed at %d ms: %s": "%d ms のキャプチャに失敗しました: %s",

		// Errors
		"Invalid export settings: %s": "エクスポート設定が不正です: %s",
		"Failed to open video: %s":    "動画を開けませんでした: %s",
		"Failed to write %s: %s":      "%s の書き込みに失敗しました: %s",
		"Export failed: %s":           "エクスポートに失敗しました: %s",
	})

	l10n.Register("zh", l10n.LexiconMap{
		"Starting export %s: %s":                    "开始导出 %s: %s",
		"Video duration: %d ms":                     "视频时长: %d ms",
		"Planned %d captures (%s mode)":             "已规划 %d 次截图 (%s 模式)",
		"Writing with %d workers":                   "使用 %d 个工作线程写入",
		"Captured %d/%d at %d ms":                   "已截图 %d/%d (%d ms)",
		"Export completed: %d succeeded, %d failed": "导出完成: 成功 %d, 失败 %d",
		"Export cancelled after %d/%d captures":     "已在 %d/%d 次截图后取消导出",
		"Export cancelled before capture":           "已在截图开始前取消导出",

		"Using %s backend":     "使用 %s 后端",
		"Found ffmpeg at %s":   "找到 ffmpeg: %s",
		"Seeking to %d ms":     "正在定位到 %d ms",
		"Probed %s: %s, %d ms": "解析 %s: %s, %d ms",

		"Saved %s": "已保存 %s",

		"Interrupted, cancelling export...": "已中断，正在取消导出...",
		"Loaded settings from %s":           "已从 %s 加载设置",
		"Settings saved to %s":              "设置已保存到 %s",
		"Report saved to %s":                "报告已保存到 %s",
		"Screenshot saved to %s":            "截图已保存到 %s",

		"Capture failed at %d ms: %s": "%d ms 处截图失败: %s",

		"Invalid export settings: %s": "导出设置无效: %s",
		"Failed to open video: %s":    "无法打开视频: %s",
		"Failed to write %s: %s":      "写入 %s 失败: %s",
		"Export failed: %s":           "导出失败: %s",
	})
}
