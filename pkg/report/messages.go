package report

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Export Report":   "エクスポートレポート",
		"Generated":       "作成日時",
		"Video":           "動画",
		"File":            "ファイル",
		"Duration":        "長さ",
		"Backend":         "バックエンド",
		"Settings":        "設定",
		"Mode":            "モード",
		"Parameter":       "パラメータ",
		"Format":          "形式",
		"Quality":         "品質",
		"Naming":          "命名",
		"Output":          "出力先",
		"Seed":            "シード",
		"Result":          "結果",
		"Job":             "ジョブ",
		"State":           "状態",
		"Planned":         "計画数",
		"Succeeded":       "成功",
		"Failed":          "失敗",
		"Elapsed":         "所要時間",
		"Error":           "エラー",
		"Files":           "ファイル一覧",
		"Failures":        "失敗一覧",
		"Timestamp":       "タイムスタンプ",
		"Kind":            "種別",
		"Message":         "メッセージ",
		"Item":            "項目",
		"Value":           "値",
		"... and %d more": "... 他 %d 件",
	})

	l10n.Register("zh", l10n.LexiconMap{
		"Export Report":   "导出报告",
		"Generated":       "生成时间",
		"Video":           "视频",
		"File":            "文件",
		"Duration":        "时长",
		"Backend":         "后端",
		"Settings":        "设置",
		"Mode":            "模式",
		"Parameter":       "参数",
		"Format":          "格式",
		"Quality":         "质量",
		"Naming":          "命名",
		"Output":          "输出目录",
		"Seed":            "种子",
		"Result":          "结果",
		"Job":             "任务",
		"State":           "状态",
		"Planned":         "计划数",
		"Succeeded":       "成功",
		"Failed":          "失败",
		"Elapsed":         "耗时",
		"Error":           "错误",
		"Files":           "文件列表",
		"Failures":        "失败列表",
		"Timestamp":       "时间戳",
		"Kind":            "类型",
		"Message":         "消息",
		"Item":            "项目",
		"Value":           "值",
		"... and %d more": "... 另外 %d 个",
	})
}
