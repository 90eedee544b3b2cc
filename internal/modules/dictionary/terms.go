// Package dictionary serves a curated glossary of Korean stock market
// vocabulary, from exchange terminology to retail investor slang.
package dictionary

import "strings"

// Term is one glossary entry
type Term struct {
	Term        string `json:"term"`
	English     string `json:"english,omitempty"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
	Formula     string `json:"formula,omitempty"`
	Tip         string `json:"tip,omitempty"`
	Warning     string `json:"warning,omitempty"`
	Related     string `json:"related,omitempty"`
	Meme        string `json:"meme,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	Category    string `json:"category,omitempty"`
}

// categoryOrder fixes the display order of the glossary sections
var categoryOrder = []string{"일반 용어", "은어/줄임말", "ETF 용어", "지표", "트렌드/밈"}

var stockTerms = map[string][]Term{
	"일반 용어": {
		{Term: "매수", English: "Buy", Description: "주식을 사는 행위. '롱 포지션'이라고도 함", Example: "KODEX 200을 10주 매수했다"},
		{Term: "매도", English: "Sell", Description: "보유한 주식을 파는 행위", Example: "손절을 위해 전량 매도했다"},
		{Term: "시가", English: "Opening Price", Description: "장 시작 시 첫 거래 가격", Example: "오늘 시가는 50,000원이었다"},
		{Term: "종가", English: "Closing Price", Description: "장 마감 시 마지막 거래 가격. 가장 중요한 가격", Example: "종가 기준으로 수익률을 계산한다"},
		{Term: "고가", English: "High Price", Description: "하루 중 가장 높았던 가격", Example: "고가 대비 -5% 하락했다"},
		{Term: "저가", English: "Low Price", Description: "하루 중 가장 낮았던 가격", Example: "저가에서 반등했다"},
		{Term: "상한가", English: "Upper Limit", Description: "하루 최대 상승 제한 (+30%). 2회 연속 시 거래 정지될 수 있음", Example: "따상 (시초가 상한가)"},
		{Term: "하한가", English: "Lower Limit", Description: "하루 최대 하락 제한 (-30%)", Example: "악재로 인해 하한가를 쳤다"},
		{Term: "거래량", English: "Volume", Description: "하루 동안 거래된 주식 수. 거래량이 많으면 유동성이 좋음", Example: "평소 거래량의 10배가 터졌다"},
		{Term: "시가총액", English: "Market Cap", Description: "주가 × 발행주식수. 회사의 시장 가치", Example: "삼성전자 시가총액은 400조원"},
		{Term: "액면분할", English: "Stock Split", Description: "주식을 쪼개서 개수를 늘리는 것. 1주 → 2주, 가격은 반으로", Example: "5:1 액면분할로 주가가 1/5이 되었다"},
		{Term: "배당", English: "Dividend", Description: "회사가 이익을 주주에게 나눠주는 것", Example: "연 배당률 3%"},
		{Term: "배당락", English: "Ex-Dividend", Description: "배당 기준일 다음 날. 보통 배당만큼 주가가 떨어짐", Example: "배당락일에 -3% 하락"},
		{Term: "IPO", English: "Initial Public Offering", Description: "기업공개, 상장. 회사가 처음으로 주식시장에 나오는 것", Example: "카카오뱅크 IPO에 청약했다"},
		{Term: "공모주", English: "IPO Stock", Description: "상장 전에 일반 투자자에게 파는 주식. 로또라고도 불림", Example: "공모주 청약에 당첨됐다!"},
	},
	"은어/줄임말": {
		{Term: "물타기", English: "Averaging Down", Description: "손실 중인 주식을 추가 매수해서 평균 단가를 낮추는 것", Example: "물타기 3번째... 이제 평단가 45,000원", Warning: "⚠️ 하락장에서 물타기는 위험할 수 있음"},
		{Term: "불타기", English: "Averaging Up", Description: "수익 중인 주식을 추가 매수하는 것. 물타기 반대", Example: "+10% 올랐는데 추가 매수 불타기!", Tip: "상승 추세 확신할 때 사용"},
		{Term: "익절", English: "Take Profit", Description: "이익 실현. 수익이 난 상태에서 파는 것", Example: "+20% 익절했다", Related: "손절"},
		{Term: "손절", English: "Stop Loss", Description: "손해 보고 파는 것. 추가 손실을 막기 위해", Example: "-10%에서 손절 기준 설정", Tip: "손절 못하고 존버하다가 더 큰 손실 보는 경우 많음"},
		{Term: "존버", English: "HODL (Hold On for Dear Life)", Description: "존나 버티기. 손실이 나도 팔지 않고 버티는 것", Example: "-30%인데 존버 중...", Meme: "💎🙌 (다이아몬드 핸즈)"},
		{Term: "존버vs손절", English: "Hold vs Cut Loss", Description: "주식 투자자의 영원한 딜레마", Example: "손절할까 존버할까... 이게 고민이다", Tip: "정답은 없지만, 손절 라인 미리 정해두는 게 중요"},
		{Term: "평단가", English: "Average Price", Description: "평균 매수 단가. 여러 번 사고팔았을 때 평균 가격", Example: "평단가 50,000원에 현재가 48,000원", Related: "물타기, 불타기"},
		{Term: "물린다", English: "Trapped", Description: "손실 상태에 빠진 것. 평단가보다 현재가가 낮음", Example: "50,000원에 샀는데 지금 40,000원... 물렸다"},
		{Term: "깊물", English: "Deep Underwater", Description: "깊게 물림. -20%, -30% 이상 큰 손실", Example: "깊물이라 손절도 못하겠다...", Warning: "⚠️ 손실이 크면 회복하기 더 어려움"},
		{Term: "앝물", English: "Shallow Underwater", Description: "얕게 물림. -5% 정도 작은 손실", Example: "앝물이니까 조금만 기다려보자", Tip: "앝물일 때 손절이 쉬움"},
		{Term: "태운다", English: "Moon / Pump", Description: "급등하는 것. 로켓 타고 달까지 간다는 의미", Example: "오늘 +15% 태웠다! 🚀", Emoji: "🚀🌙"},
		{Term: "빠진다", English: "Dump / Drop", Description: "급락하는 것", Example: "장 시작하자마자 -10% 빠졌다"},
		{Term: "떡락", English: "Heavy Drop", Description: "떡 하니 떨어짐. 급격한 하락", Example: "악재에 떡락... -15%", Emoji: "📉"},
		{Term: "떡상", English: "Heavy Rise", Description: "떡 하니 오름. 급격한 상승", Example: "실적 호재로 떡상! +20%", Emoji: "📈"},
		{Term: "수직낙하", English: "Vertical Drop", Description: "거의 90도로 떨어지는 것처럼 보이는 급락", Example: "수직낙하 시작... 손절 타이밍 놓침", Warning: "⚠️ 공포 매도 조심"},
		{Term: "깡통", English: "Blown Account", Description: "전 재산을 날린 상태. 계좌가 텅 빔", Example: "레버리지 쓰다가 깡통됐다...", Warning: "⚠️ 레버리지, 선물옵션 조심!"},
		{Term: "파산", English: "Bankrupt", Description: "진짜 파산. 깡통보다 더 심각한 상태", Example: "빚투하다가 파산 직전...", Warning: "🚨 절대 빚내서 투자하지 마세요"},
		{Term: "영끌", English: "All-In", Description: "영혼까지 끌어모음. 대출, 신용까지 다 동원해서 투자", Example: "영끌해서 삼성전자 샀다", Warning: "🚨 매우 위험! 절대 추천하지 않음"},
		{Term: "빚투", English: "Margin Trading", Description: "빚내서 투자. 대출로 주식 사는 것", Example: "신용대출 받아서 빚투 중", Warning: "🚨 이자 부담 + 원금 손실 위험"},
		{Term: "대출투자", English: "Leveraged Investment", Description: "빚투와 같은 의미", Example: "대출투자로 10배 레버리지", Warning: "🚨 파산 지름길"},
		{Term: "개미", English: "Retail Investor", Description: "개인투자자. 일반 사람들", Example: "오늘도 개미들이 순매수 1위", Related: "외인, 기관"},
		{Term: "외인", English: "Foreign Investor", Description: "외국인 투자자. 보통 덩치가 크고 영향력이 큼", Example: "외인 순매수 폭발!"},
		{Term: "기관", English: "Institutional Investor", Description: "기관투자자. 연기금, 보험사, 자산운용사 등", Example: "기관이 물량을 털고 있다"},
		{Term: "외인 빨대", English: "Foreign Outflow", Description: "외국인이 계속 팔아치우는 상황", Example: "외인 빨대 시작... 이제 하락 장기화될 듯", Tip: "외인 순매도가 계속되면 약세장 신호"},
		{Term: "기관 털기", English: "Institutional Selling", Description: "기관이 대량으로 파는 것", Example: "기관 털기에 -5% 하락", Warning: "⚠️ 기관이 팔면 추가 하락 가능성"},
		{Term: "개미털기", English: "Retail Shakeout", Description: "세력이 일부러 하락시켜 개인투자자를 내쫓는 것", Example: "이거 개미털기인 것 같은데... 존버할까?", Tip: "공포에 팔지 말고 냉정하게 판단"},
		{Term: "작전", English: "Pump & Dump", Description: "작전세력. 주가를 인위적으로 조작하는 세력", Example: "작전주 같은데? 조심해야겠다", Warning: "⚠️ 작전주는 결국 폭락함"},
		{Term: "세력", English: "Market Maker", Description: "큰 자금으로 주가에 영향을 주는 집단", Example: "세력이 물량을 모으고 있다"},
		{Term: "작전주", English: "Manipulated Stock", Description: "작전 세력이 조종하는 주식. 급등 후 폭락", Example: "작전주 조심! 물리면 못 나옴", Warning: "🚨 절대 손대지 마세요"},
		{Term: "따상", English: "IPO Upper Limit", Description: "시초가 상한가. 공모주가 상장 첫날 상한가 가는 것", Example: "공모주 따상 대박!"},
		{Term: "동학개미", English: "Korean Retail Bulls", Description: "한국 주식에 투자하는 개인투자자. 동학농민운동에서 유래", Example: "동학개미들이 바닥을 매수 중"},
		{Term: "서학개미", English: "Overseas Retail Investor", Description: "미국 주식에 투자하는 한국 개인투자자", Example: "서학개미들이 테슬라 매수"},
		{Term: "북학개미", English: "China Stock Investor", Description: "중국 주식에 투자하는 개인투자자", Example: "북학개미들 알리바바 존버 중", Tip: "중국 주식은 정책 리스크 큼"},
		{Term: "호재", English: "Positive News", Description: "좋은 소식. 주가 상승 요인", Example: "실적 호재로 급등!"},
		{Term: "악재", English: "Negative News", Description: "나쁜 소식. 주가 하락 요인", Example: "CEO 횡령 악재..."},
		{Term: "호재는 악재", English: "Buy the Rumor, Sell the News", Description: "좋은 뉴스가 나오면 오히려 주가가 떨어지는 현상. 이미 반영됨", Example: "실적 좋은데 하락? 호재는 악재네", Tip: "뉴스 나오기 전에 이미 상승했다면 정점일 수 있음"},
		{Term: "악재는 호재", English: "Selling is Buying Opportunity", Description: "나쁜 뉴스에 하락했지만 오히려 매수 기회", Example: "악재에 떨어졌지만 악재는 호재! 매수 찬스", Tip: "일시적 악재는 매수 기회가 될 수 있음"},
		{Term: "묻어두기", English: "Buy and Hold", Description: "장기 투자. 사서 잊어버리기", Example: "S&P500 묻어두고 10년 기다린다"},
		{Term: "장투", English: "Long-term Investment", Description: "장기 투자. 수년 이상 보유", Example: "장투 목적으로 삼성전자 매수", Related: "단타"},
		{Term: "단타", English: "Day Trading", Description: "단기 매매. 당일 또는 며칠 내 매도", Example: "단타로 +3% 먹고 도망", Warning: "⚠️ 수수료 + 세금 고려 필요"},
		{Term: "스윙", English: "Swing Trading", Description: "며칠~몇 주 보유하는 중기 매매", Example: "스윙 트레이딩으로 일주일 보유", Tip: "단타와 장투의 중간"},
		{Term: "데이트레이딩", English: "Day Trading", Description: "하루 안에 사고파는 초단타 매매", Example: "데이트레이딩으로 1% 수익", Warning: "⚠️ 고수나 전업투자자용"},
		{Term: "반등", English: "Bounce / Rebound", Description: "하락 후 다시 오르는 것", Example: "저점에서 반등 시작"},
		{Term: "반락", English: "Pullback", Description: "상승 후 일시적으로 떨어지는 것", Example: "고점 대비 반락 중"},
		{Term: "조정", English: "Correction", Description: "상승 후 자연스러운 하락. 건강한 신호일 수 있음", Example: "과열됐으니 조정 필요", Tip: "조정은 매수 기회가 될 수 있음"},
		{Term: "쌍바닥", English: "Double Bottom (W Pattern)", Description: "W자 모양 패턴. 바닥을 두 번 찍고 반등하는 신호", Example: "쌍바닥 형성 후 상승 전환!"},
		{Term: "쌍봉", English: "Double Top (M Pattern)", Description: "M자 모양 패턴. 고점을 두 번 찍고 하락하는 신호", Example: "쌍봉 완성... 하락 전환 위험", Warning: "⚠️ 매도 신호"},
		{Term: "갭상승", English: "Gap Up", Description: "전일 종가보다 높게 시작하는 것", Example: "긍정적 뉴스로 갭상승 출발"},
		{Term: "갭하락", English: "Gap Down", Description: "전일 종가보다 낮게 시작하는 것", Example: "실적 쇼크로 갭하락..."},
		{Term: "갭메우기", English: "Gap Fill", Description: "갭 생긴 구간을 다시 채우는 현상", Example: "갭상승 했는데 바로 갭메우기", Tip: "갭은 채워지는 경향이 있음"},
		{Term: "불장", English: "Bull Market", Description: "강세장. 주가가 계속 오르는 장세", Example: "요즘 불장이라 뭘 사도 오른다", Emoji: "🐂📈"},
		{Term: "곰장", English: "Bear Market", Description: "약세장. 주가가 계속 떨어지는 장세", Example: "곰장에선 현금이 최고", Emoji: "🐻📉"},
		{Term: "횡보", English: "Sideways", Description: "옆으로 가는 장. 오르지도 내리지도 않음", Example: "한 달째 횡보 중...", Tip: "횡보 후 큰 움직임 올 수 있음"},
		{Term: "박스권", English: "Range Bound", Description: "특정 가격대 안에서만 움직이는 것", Example: "50,000~52,000원 박스권 장세", Related: "횡보"},
		{Term: "물량", English: "Volume / Supply", Description: "거래되는 주식의 양. 또는 팔려는 주식", Example: "세력이 물량 털어내는 중"},
		{Term: "물량폭탄", English: "Heavy Selling", Description: "갑자기 엄청난 매도 물량이 쏟아지는 것", Example: "물량폭탄에 -10% 급락", Warning: "⚠️ 대량 매도는 하락 신호"},
		{Term: "가즈아", English: "Let's Go!", Description: "올라가자! 상승 기원", Example: "비트코인 가즈아! 🚀", Meme: "🚀🚀🚀"},
		{Term: "우주 가즈아", English: "To The Moon", Description: "우주까지 가자! 더 높은 상승 기원", Example: "테슬라 우주 가즈아!", Emoji: "🚀🌙"},
		{Term: "관심 주시", English: "Watchlist", Description: "매수 전에 지켜보는 종목", Example: "일단 관심 주시에 넣어두고 관망", Tip: "매수 타이밍 노릴 때 사용"},
		{Term: "관종", English: "Watchlist Stock", Description: "관심 종목. 지켜보는 주식", Example: "이 주식 내 관종이야"},
		{Term: "분할매수", English: "Dollar Cost Averaging", Description: "한 번에 사지 않고 나눠서 매수", Example: "1000주를 200주씩 5번 분할매수", Tip: "리스크 분산 효과"},
		{Term: "분할매도", English: "Scale Out", Description: "한 번에 팔지 않고 나눠서 매도", Example: "익절을 3번에 걸쳐 분할매도", Tip: "고점 못 잡아도 안정적 수익"},
		{Term: "풀매수", English: "All-In Buy", Description: "가용 자금 전부로 매수", Example: "확신해서 풀매수 때렸다", Warning: "⚠️ 위험한 전략"},
		{Term: "풀매도", English: "Full Exit", Description: "보유 주식 전량 매도", Example: "불안해서 풀매도 했다"},
		{Term: "현타", English: "Reality Check", Description: "현실 자각 타임. 손실 보고 정신 차림", Example: "-50% 보고 현타 왔다...", Related: "멘붕"},
		{Term: "멘붕", English: "Mental Breakdown", Description: "멘탈 붕괴. 큰 손실에 정신적 타격", Example: "연속 손절에 멘붕...", Tip: "휴식이 필요한 신호"},
		{Term: "패닉", English: "Panic Selling", Description: "공포에 질려 무작정 파는 것", Example: "패닉 매도로 저점에서 다 팔았다", Warning: "⚠️ 냉정함 잃으면 큰 손실"},
	},
	"ETF 용어": {
		{Term: "ETF", English: "Exchange Traded Fund", Description: "상장지수펀드. 인덱스를 추종하는 펀드를 주식처럼 거래", Example: "KODEX 200은 코스피 200 지수를 추종하는 ETF"},
		{Term: "추종 지수", English: "Underlying Index", Description: "ETF가 따라가는 기준 지수", Example: "SPY는 S&P 500 지수를 추종"},
		{Term: "괴리율", English: "Tracking Error", Description: "ETF 가격과 실제 순자산가치(NAV)의 차이", Example: "괴리율 +0.5%는 약간 비싸게 거래된다는 의미", Tip: "괴리율이 크면 비효율적인 ETF"},
		{Term: "NAV", English: "Net Asset Value", Description: "순자산가치. ETF가 보유한 자산의 실제 가치", Example: "NAV는 10,000원인데 시장가는 10,050원"},
		{Term: "레버리지 ETF", English: "Leveraged ETF", Description: "지수 변동의 2배 또는 3배로 움직이는 ETF", Example: "KODEX 레버리지는 코스피 200의 2배 움직임", Warning: "⚠️ 장기 보유 시 손실 누적 (복리 효과)"},
		{Term: "인버스 ETF", English: "Inverse ETF", Description: "지수와 반대로 움직이는 ETF. 하락장에서 수익", Example: "KODEX 인버스는 코스피가 떨어지면 오름", Warning: "⚠️ 장기 보유 부적합"},
		{Term: "배당 ETF", English: "Dividend ETF", Description: "배당을 많이 주는 기업들로 구성된 ETF", Example: "SCHD, VYM, TIGER 미국배당귀족"},
		{Term: "섹터 ETF", English: "Sector ETF", Description: "특정 산업만 모은 ETF", Example: "XLK (기술), XLE (에너지), SMH (반도체)"},
		{Term: "리밸런싱", English: "Rebalancing", Description: "ETF가 추종 지수에 맞춰 구성 종목을 재조정하는 것", Example: "분기마다 리밸런싱 실시"},
	},
	"지표": {
		{Term: "CAGR", English: "Compound Annual Growth Rate", Description: "연평균 복리 수익률. 매년 평균 몇 %씩 벌었는지", Example: "5년 CAGR 12%", Formula: "((종가/시작가)^(1/년수) - 1) × 100"},
		{Term: "MDD", English: "Maximum Drawdown", Description: "최대 낙폭. 역대 최고가 대비 최대 얼마나 떨어졌는지", Example: "MDD 30%는 최고가에서 30% 빠졌던 적 있다는 의미", Tip: "적립식 투자에서 매우 중요한 지표"},
		{Term: "샤프 비율", English: "Sharpe Ratio", Description: "위험 대비 수익의 효율성. 높을수록 좋음", Example: "샤프 비율 1.5 (매우 양호)", Formula: "(CAGR - 무위험수익률) / 변동성"},
		{Term: "변동성", English: "Volatility", Description: "가격이 얼마나 들쭉날쭉한지. 높을수록 위험함", Example: "변동성 15% (안정적)", Tip: "10% 미만: 매우 안정, 30% 이상: 위험"},
		{Term: "PER", English: "Price to Earnings Ratio", Description: "주가수익비율. 주가 ÷ 주당순이익. 낮을수록 저평가", Example: "PER 10배 (저평가), PER 50배 (고평가)", Tip: "업종별로 기준이 다름"},
		{Term: "PBR", English: "Price to Book Ratio", Description: "주가순자산비율. 주가 ÷ 주당순자산. 1 미만이면 자산 대비 저평가", Example: "PBR 0.8 (저평가 가능성)"},
		{Term: "ROE", English: "Return on Equity", Description: "자기자본이익률. 자본으로 얼마나 이익을 냈는지. 높을수록 좋음", Example: "ROE 15% (우량 기업)"},
		{Term: "EPS", English: "Earnings Per Share", Description: "주당순이익. 한 주당 얼마나 이익을 냈는지", Example: "EPS 5,000원"},
	},
	"트렌드/밈": {
		{Term: "YOLO", English: "You Only Live Once", Description: "인생 한 방! 전 재산 몰빵", Example: "YOLO 테슬라 콜옵션!", Warning: "🚨 도박이 아닙니다"},
		{Term: "FOMO", English: "Fear Of Missing Out", Description: "놓칠까봐 두려워서 급하게 사는 심리", Example: "FOMO로 고점에 물림..."},
		{Term: "다이아몬드 핸즈", English: "Diamond Hands 💎🙌", Description: "어떤 상황에서도 팔지 않고 존버", Example: "-50%인데 다이아몬드 핸즈 유지 중"},
		{Term: "페이퍼 핸즈", English: "Paper Hands 📄🙌", Description: "조금만 떨어져도 바로 파는 약한 멘탈", Example: "페이퍼 핸즈라서 -5%에 손절함"},
		{Term: "투더문", English: "To The Moon 🚀🌙", Description: "달까지 간다! 엄청난 상승 기대", Example: "GME 투더문! 🚀🚀🚀"},
		{Term: "우주 가즈아", English: "Let's Go!", Description: "더 높이 상승하자!", Example: "비트코인 우주 가즈아! 🚀"},
	},
}

// Categories returns the glossary section names in display order
func Categories() []string {
	return categoryOrder
}

// TermsByCategory returns one section's terms, or nil for an unknown
// category
func TermsByCategory(category string) []Term {
	return stockTerms[category]
}

// AllTerms returns the whole glossary keyed by category
func AllTerms() map[string][]Term {
	return stockTerms
}

// Search matches the query against term names, English names and
// descriptions, case-insensitively, across all categories. Results carry
// their category and are capped at limit.
func Search(query string, limit int) []Term {
	query = strings.ToLower(query)

	results := []Term{}
	for _, category := range categoryOrder {
		for _, term := range stockTerms[category] {
			if len(results) >= limit {
				return results
			}
			if strings.Contains(strings.ToLower(term.Term), query) ||
				strings.Contains(strings.ToLower(term.English), query) ||
				strings.Contains(strings.ToLower(term.Description), query) {
				term.Category = category
				results = append(results, term)
			}
		}
	}

	return results
}
