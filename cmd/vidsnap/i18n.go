package main

import (
	"github.com/ideamans/go-l10n"
)

// Usage strings and the messages only the CLI logs.
func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Export still frames from a video": "動画から静止画を書き出す",
		"vidsnap captures screenshots from a video at equal intervals, random timestamps or one random timestamp per equal segment.": "vidsnapは動画から等間隔・ランダム・区間ごとのランダムな位置でスクリーンショットを書き出します。",

		// Commands
		"Capture screenshots across the whole video":    "動画全体からスクリーンショットを書き出す",
		"Print the capture timestamps without exporting": "書き出さずにキャプチャ位置を表示",
		"Save a single screenshot":                      "スクリーンショットを1枚保存",
		"Manage the settings file":                      "設定ファイルを管理",
		"Write the default settings file":               "既定の設定ファイルを書き出す",
		"Print the effective settings":                  "有効な設定を表示",
		"Show version information":                      "バージョン情報を表示",
		"vidsnap version %s":                            "vidsnap バージョン %s",

		// Flags
		"Settings file (default: user config directory)":        "設定ファイル（既定: ユーザー設定ディレクトリ）",
		"Project name, used as sub directory and file prefix":   "プロジェクト名（サブディレクトリ名とファイル名の接頭辞）",
		"Export directory":                                      "書き出し先ディレクトリ",
		"Sampling mode: equal, random or orthogonal":            "サンプリング方式: equal, random, orthogonal",
		"Interval in milliseconds for equal mode":               "等間隔モードの間隔（ミリ秒）",
		"Number of captures for random and orthogonal modes":    "ランダム・直交モードのキャプチャ数",
		"Image format: jpg, png, bmp or tiff":                   "画像形式: jpg, png, bmp, tiff",
		"JPEG quality (1-100)":                                  "JPEG品質（1-100）",
		"File naming: timestamp or sequence":                    "ファイル名: timestamp または sequence",
		"Number of parallel file writers":                       "並列書き込み数",
		"Give up on a single capture after this long":           "1枚のキャプチャを諦めるまでの時間",
		"Downscale frames wider than this":                      "この幅を超えるフレームを縮小",
		"Burn the timestamp into each image":                    "各画像にタイムスタンプを描画",
		"Random seed (0 = time based)":                          "乱数シード（0 = 時刻ベース）",
		"Decoder backend: auto, ffmpeg or mpeg":                 "デコーダ: auto, ffmpeg, mpeg",
		"Path to the ffmpeg binary":                             "ffmpeg 実行ファイルのパス",
		"Log level (debug, info, warn, error)":                  "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                               "ログ出力をすべて抑制",
		"Write a Markdown report to this path":                  "Markdownレポートの出力先",
		"Persist the effective settings after a successful export": "書き出し成功後に設定を保存",
		"Plan for this duration instead of opening a video":     "動画を開かずにこの長さで計画",
		"Position of the screenshot, e.g. 12.5s or 1m3s":        "スクリーンショットの位置（例: 12.5s, 1m3s）",
		"Overwrite an existing file":                            "既存ファイルを上書き",

		// Messages
		"Exactly one video file is required":             "動画ファイルを1つ指定してください",
		"Output saved to %s":                             "出力を %s に保存しました",
		"Progress: %d/%d (%d%%)":                         "進捗: %d/%d (%d%%)",
		"Failed to load .env: %s":                        ".env の読み込みに失敗しました: %s",
		"%s already exists, use --force to overwrite":    "%s は既に存在します。上書きするには --force を指定してください",
	})

	l10n.Register("zh", l10n.LexiconMap{
		"Export still frames from a video": "从视频导出静态图像",
		"vidsnap captures screenshots from a video at equal intervals, random timestamps or one random timestamp per equal segment.": "vidsnap 按等间隔、随机时间点或每个等分区间内的随机时间点从视频截图。",

		"Capture screenshots across the whole video":    "对整个视频截图",
		"Print the capture timestamps without exporting": "仅打印截图时间点，不导出",
		"Save a single screenshot":                      "保存单张截图",
		"Manage the settings file":                      "管理设置文件",
		"Write the default settings file":               "写入默认设置文件",
		"Print the effective settings":                  "打印当前生效的设置",
		"Show version information":                      "显示版本信息",
		"vidsnap version %s":                            "vidsnap 版本 %s",

		"Settings file (default: user config directory)":        "设置文件（默认: 用户配置目录）",
		"Project name, used as sub directory and file prefix":   "项目名称（用作子目录和文件名前缀）",
		"Export directory":                                      "导出目录",
		"Sampling mode: equal, random or orthogonal":            "采样模式: equal, random, orthogonal",
		"Interval in milliseconds for equal mode":               "等间隔模式的间隔（毫秒）",
		"Number of captures for random and orthogonal modes":    "随机和正交模式的截图数量",
		"Image format: jpg, png, bmp or tiff":                   "图像格式: jpg, png, bmp, tiff",
		"JPEG quality (1-100)":                                  "JPEG 质量（1-100）",
		"File naming: timestamp or sequence":                    "文件命名: timestamp 或 sequence",
		"Number of parallel file writers":                       "并行写入数",
		"Give up on a single capture after this long":           "单次截图的超时时间",
		"Downscale frames wider than this":                      "宽度超过此值时缩小",
		"Burn the timestamp into each image":                    "在图像上绘制时间戳",
		"Random seed (0 = time based)":                          "随机种子（0 = 基于时间）",
		"Decoder backend: auto, ffmpeg or mpeg":                 "解码后端: auto, ffmpeg, mpeg",
		"Path to the ffmpeg binary":                             "ffmpeg 可执行文件路径",
		"Log level (debug, info, warn, error)":                  "日志级别（debug, info, warn, error）",
		"Suppress all log output":                               "禁止所有日志输出",
		"Write a Markdown report to this path":                  "Markdown 报告输出路径",
		"Persist the effective settings after a successful export": "导出成功后保存设置",
		"Plan for this duration instead of opening a video":     "不打开视频，按此时长规划",
		"Position of the screenshot, e.g. 12.5s or 1m3s":        "截图位置，例如 12.5s 或 1m3s",
		"Overwrite an existing file":                            "覆盖已有文件",

		"Exactly one video file is required":          "请指定一个视频文件",
		"Output saved to %s":                          "输出已保存到 %s",
		"Progress: %d/%d (%d%%)":                      "进度: %d/%d (%d%%)",
		"Failed to load .env: %s":                     "加载 .env 失败: %s",
		"%s already exists, use --force to overwrite": "%s 已存在，使用 --force 覆盖",
	})
}
