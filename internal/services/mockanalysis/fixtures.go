package mockanalysis

import (
	"strings"

	"RiskDash/internal/domain/models"
	"RiskDash/pkg/util"
)

var f = util.Float64Ptr

func technicals(periods ...models.Entry[models.IndicatorBundle]) models.Technicals {
	return models.Technicals(periods)
}

func period(label string, b models.IndicatorBundle) models.Entry[models.IndicatorBundle] {
	return models.Entry[models.IndicatorBundle]{Key: label, Value: b}
}

func series(kv ...string) models.Ordered[string] {
	out := make(models.Ordered[string], 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out.Set(kv[i], kv[i+1])
	}
	return out
}

// assetFixture builds a fresh record on every call so callers may mutate it.
func assetFixture(id FixtureID, input string) models.AssetSummary {
	switch id {
	case FixtureMoutai:
		return models.AssetSummary{
			Symbol:    "600519",
			Name:      "贵州茅台",
			Type:      models.AssetTypeStock,
			Price:     f(1688.00),
			PctChange: f(1.25),
			Change:    f(20.85),
			Volume:    f(2856300),
			Category:  models.CategoryTags("白酒", "消费", "核心资产"),
			Market:    "上海",
			Currency:  "CNY",
			Technicals: technicals(
				period("日线", models.IndicatorBundle{Kline: "放量阳线", MACD: "金叉", KDJ: "高位钝化", RSI1: "62.4", RSI2: "58.1", RSI3: "55.7", Chips: "获利盘 78%"}),
				period("周线", models.IndicatorBundle{Kline: "三连阳", MACD: "红柱放大", KDJ: "多头", RSI1: "59.8", RSI2: "56.2", RSI3: "53.0", Chips: "筹码集中"}),
				period("月线", models.IndicatorBundle{Kline: "长期均线上方", MACD: "零轴上方", KDJ: "中性", RSI1: "54.1", RSI2: "52.6", RSI3: "51.3"}),
			),
			Flow: &models.Flow{
				Total:    "+2.62亿",
				Super:    "+2.10亿",
				Large:    "+1.35亿",
				Medium:   "-0.28亿",
				Small:    "-0.55亿",
				MultiDay: series("今日", "+2.62亿", "3日", "+5.10亿", "5日", "+7.45亿", "10日", "-1.20亿"),
			},
			Sector: &models.SectorInfo{
				Name:    "白酒",
				Cycle:   "复苏期",
				Change:  f(0.86),
				Heat:    "偏热",
				Leaders: []string{"贵州茅台", "五粮液", "泸州老窖"},
			},
			Macro: &models.MacroInfo{
				Cycle:      "温和复苏",
				Summary:    "内需逐步修复，消费板块估值处于历史中位。",
				Indicators: series("CPI", "0.7%", "PMI", "50.8", "M2增速", "8.3%"),
			},
			Dividend: &models.DividendInfo{Yield: f(1.9), PerShare: f(30.88), ExDate: "2024-06-19", Frequency: "年度"},
		}
	case FixtureBitcoin:
		return models.AssetSummary{
			Symbol:    "BTC",
			Name:      "比特币",
			Type:      models.AssetTypeStock,
			Price:     f(67250.50),
			PctChange: f(-2.35),
			Change:    f(-1618.40),
			Volume:    f(35210),
			Category:  models.CategoryText("加密货币, 数字资产"),
			Market:    "加密货币",
			Currency:  "USD",
			Technicals: technicals(
				period("4小时", models.IndicatorBundle{Kline: "长上影", MACD: "死叉", KDJ: "超买回落", RSI1: "48.2", RSI2: "51.7", RSI3: "54.0"}),
				period("日线", models.IndicatorBundle{Kline: "高位震荡", MACD: "红柱缩短", KDJ: "中性", RSI1: "55.3", RSI2: "57.9", RSI3: "58.4"}),
				period("周线", models.IndicatorBundle{Kline: "上升通道", MACD: "零轴上方", KDJ: "多头", RSI1: "63.0", RSI2: "61.2", RSI3: "60.1"}),
			),
			Macro: &models.MacroInfo{
				Cycle:      "流动性收紧",
				Summary:    "美元利率高位，风险资产波动加大。",
				Indicators: series("美债10Y", "4.3%", "美元指数", "104.6"),
			},
		}
	case FixturePingAn:
		return models.AssetSummary{
			Symbol:    "000001",
			Name:      "平安银行",
			Type:      models.AssetTypeStock,
			Price:     f(10.52),
			PctChange: f(0.38),
			Change:    f(0.04),
			Volume:    f(95832100),
			Category:  models.CategoryText("银行，金融"),
			Market:    "深圳",
			Currency:  "CNY",
			Technicals: technicals(
				period("日线", models.IndicatorBundle{Kline: "小阳线", MACD: "粘合", KDJ: "低位金叉", RSI1: "47.5", RSI2: "46.8", RSI3: "45.9", Chips: "套牢盘 61%"}),
				period("周线", models.IndicatorBundle{Kline: "底部横盘", MACD: "绿柱缩短", KDJ: "中性", RSI1: "44.2", RSI2: "43.0", RSI3: "42.7"}),
			),
			Flow: &models.Flow{
				Total:  "-0.35亿",
				Super:  "-0.42亿",
				Large:  "+0.12亿",
				Medium: "+0.03亿",
				Small:  "-0.08亿",
			},
			Sector:   &models.SectorInfo{Name: "银行", Cycle: "底部震荡", Change: f(-0.21), Heat: "偏冷"},
			Dividend: &models.DividendInfo{Yield: f(6.2), PerShare: f(0.719), ExDate: "2024-06-14", Frequency: "年度"},
		}
	case FixtureGold:
		return models.AssetSummary{
			Symbol:    "518880",
			Name:      "黄金ETF",
			Type:      models.AssetTypeFund,
			Price:     f(5.312),
			PctChange: f(0.85),
			Change:    f(0.045),
			Volume:    f(4123500),
			Category:  models.CategoryTags("商品", "黄金", "ETF"),
			Market:    "上海",
			Currency:  "CNY",
			Technicals: technicals(
				period("日线", models.IndicatorBundle{Kline: "创新高", MACD: "金叉", KDJ: "超买", RSI1: "71.2", RSI2: "66.4", RSI3: "62.8"}),
				period("周线", models.IndicatorBundle{Kline: "上升趋势", MACD: "红柱放大", KDJ: "多头", RSI1: "68.0", RSI2: "64.5", RSI3: "61.1"}),
			),
			Macro: &models.MacroInfo{
				Cycle:      "避险升温",
				Summary:    "央行持续增持黄金，实际利率预期回落。",
				Indicators: series("实际利率", "1.9%", "央行购金", "连续18月"),
			},
			Benchmark: &models.BenchmarkInfo{
				Name:        "上海金 AU99.99",
				Return:      f(0.182),
				Volatility:  f(0.128),
				MaxDrawdown: f(-0.061),
				Sharpe:      f(1.35),
			},
		}
	case FixtureTencent:
		return models.AssetSummary{
			Symbol:    "00700",
			Name:      "腾讯控股",
			Type:      models.AssetTypeStock,
			Price:     f(382.40),
			PctChange: f(1.72),
			Change:    f(6.47),
			Volume:    f(18652000),
			Category:  models.CategoryTags("互联网", "科技", "港股通"),
			Market:    "香港",
			Currency:  "HKD",
			Technicals: technicals(
				period("日线", models.IndicatorBundle{Kline: "突破平台", MACD: "金叉", KDJ: "多头", RSI1: "60.7", RSI2: "57.3", RSI3: "54.9"}),
				period("周线", models.IndicatorBundle{Kline: "底部抬升", MACD: "零轴附近", KDJ: "金叉", RSI1: "56.1", RSI2: "53.8", RSI3: "51.2"}),
			),
			Flow: &models.Flow{
				Total:    "+5.80亿",
				Super:    "+3.20亿",
				Large:    "+1.90亿",
				Medium:   "+0.45亿",
				Small:    "+0.25亿",
				MultiDay: series("今日", "+5.80亿", "5日", "+12.30亿", "20日", "+26.70亿"),
			},
			Sector:   &models.SectorInfo{Name: "互联网", Cycle: "修复期", Change: f(1.34), Heat: "活跃"},
			Dividend: &models.DividendInfo{Yield: f(0.9), PerShare: f(3.4), ExDate: "2024-05-17", Frequency: "年度"},
		}
	default:
		symbol := normalizeInput(input)
		if symbol == "" {
			symbol = "UNKNOWN"
		}
		name := strings.TrimSpace(input)
		if name == "" {
			name = "未知资产"
		}
		return models.AssetSummary{
			Symbol: symbol,
			Name:   name,
			Type:   models.AssetTypeStock,
		}
	}
}

func analysisFixture(id FixtureID) models.AnalysisResult {
	switch id {
	case FixtureMoutai:
		return models.AnalysisResult{
			StockCycle:    "上升期",
			SectorCycle:   "复苏期",
			MacroCycle:    "温和复苏",
			SignalValue:   1.8,
			TotalScore:    78,
			WeightedScore: 81.5,
			ModelDetails: []models.ModelDetail{
				{Name: "趋势模型", Signal: "看多", Score: 82, Weight: 0.35, Description: "均线多头排列，趋势延续概率较高", Timeframe: "日线",
					Details: &models.IndicatorDetails{MACD: "金叉", KDJ: "高位钝化", RSI: "62.4"}},
				{Name: "资金流模型", Signal: "看多", Score: 76, Weight: 0.25, Description: "主力资金连续净流入"},
				{Name: "估值模型", Signal: "中性", Score: 58, Weight: 0.20, Description: "市盈率处于近五年中位"},
				{Name: "宏观周期模型", Signal: "看多", Score: 70, Weight: 0.20, Description: "消费复苏周期早期"},
			},
			Summary: "趋势与资金面共振向上，估值中性，建议逢回调分批布局，注意高位放量风险。",
		}
	case FixtureBitcoin:
		return models.AnalysisResult{
			StockCycle:    "高位震荡",
			SectorCycle:   "投机升温",
			MacroCycle:    "流动性收紧",
			SignalValue:   -1.2,
			TotalScore:    42,
			WeightedScore: 38.5,
			ModelDetails: []models.ModelDetail{
				{Name: "趋势模型", Signal: "中性", Score: 55, Weight: 0.30, Description: "周线仍在上升通道", Timeframe: "周线"},
				{Name: "波动率模型", Signal: "看空", Score: 30, Weight: 0.30, Description: "隐含波动率快速抬升", Timeframe: "4小时",
					Details: &models.IndicatorDetails{MACD: "死叉", KDJ: "超买回落", RSI: "48.2"}},
				{Name: "宏观周期模型", Signal: "看空", Score: 35, Weight: 0.40, Description: "美元利率高位压制风险偏好"},
			},
			Summary: "短期波动风险显著上升，宏观环境不利，建议降低仓位并设置止损。",
		}
	case FixturePingAn:
		return models.AnalysisResult{
			StockCycle:    "筑底期",
			SectorCycle:   "底部震荡",
			MacroCycle:    "温和复苏",
			SignalValue:   0.4,
			TotalScore:    55,
			WeightedScore: 57,
			ModelDetails: []models.ModelDetail{
				{Name: "趋势模型", Signal: "中性", Score: 50, Weight: 0.30, Description: "底部横盘整理", Timeframe: "周线"},
				{Name: "股息模型", Signal: "看多", Score: 72, Weight: 0.30, Description: "股息率显著高于无风险利率"},
				{Name: "资金流模型", Signal: "看空", Score: 40, Weight: 0.20, Description: "超大单小幅净流出"},
				{Name: "宏观周期模型", Signal: "中性", Score: 55, Weight: 0.20, Description: "信贷投放平稳"},
			},
			Summary: "高股息提供安全垫，但缺乏趋势催化，适合作为防御性底仓。",
		}
	case FixtureGold:
		return models.AnalysisResult{
			StockCycle:    "上升期",
			SectorCycle:   "景气扩张",
			MacroCycle:    "避险升温",
			SignalValue:   2.1,
			TotalScore:    84,
			WeightedScore: 86,
			ModelDetails: []models.ModelDetail{
				{Name: "趋势模型", Signal: "看多", Score: 88, Weight: 0.35, Description: "价格创历史新高", Timeframe: "日线",
					Details: &models.IndicatorDetails{MACD: "金叉", KDJ: "超买", RSI: "71.2"}},
				{Name: "宏观周期模型", Signal: "看多", Score: 85, Weight: 0.40, Description: "实际利率回落叠加央行购金"},
				{Name: "情绪模型", Signal: "中性", Score: 60, Weight: 0.25, Description: "短期情绪偏热，存在回调可能"},
			},
			Summary: "中长期逻辑清晰，短期超买，建议持有为主，回调加仓。",
		}
	case FixtureTencent:
		return models.AnalysisResult{
			StockCycle:    "修复期",
			SectorCycle:   "修复期",
			MacroCycle:    "政策宽松",
			SignalValue:   1.1,
			TotalScore:    68,
			WeightedScore: 70.5,
			ModelDetails: []models.ModelDetail{
				{Name: "趋势模型", Signal: "看多", Score: 72, Weight: 0.30, Description: "突破震荡平台", Timeframe: "日线",
					Details: &models.IndicatorDetails{MACD: "金叉", KDJ: "多头", RSI: "60.7"}},
				{Name: "资金流模型", Signal: "看多", Score: 75, Weight: 0.30, Description: "南向资金持续流入"},
				{Name: "估值模型", Signal: "看多", Score: 66, Weight: 0.20, Description: "估值低于历史均值"},
				{Name: "宏观周期模型", Signal: "中性", Score: 55, Weight: 0.20, Description: "港股流动性边际改善"},
			},
			Summary: "基本面修复叠加资金回流，趋势转强，可适度参与。",
		}
	default:
		return models.AnalysisResult{
			StockCycle:    "数据不足",
			SectorCycle:   "数据不足",
			MacroCycle:    "数据不足",
			SignalValue:   0,
			TotalScore:    50,
			WeightedScore: 50,
			ModelDetails: []models.ModelDetail{
				{Name: "基础模型", Signal: "中性", Score: 50, Weight: 1, Description: "暂无该资产的模型覆盖"},
			},
			Summary: "暂无该资产的模型覆盖，结果仅供参考。",
		}
	}
}
