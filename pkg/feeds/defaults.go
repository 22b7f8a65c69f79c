package feeds

// Defaults returns the built-in feed set: one or two agencies per country
// across the monitored regions, plus the historical articles that remain in
// every run.
func Defaults() *Config {
	return &Config{
		Feeds: map[string][]Entry{
			"UK": {
				{Agency: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml"},
				{Agency: "The Guardian", URL: "https://www.theguardian.com/world/rss"},
			},
			"USA": {
				{Agency: "CNN", URL: "http://rss.cnn.com/rss/edition.rss"},
				{Agency: "The New York Times", URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml"},
			},
			"Qatar": {
				{Agency: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml"},
			},
			"Japan": {
				{Agency: "NHK", URL: "https://www3.nhk.or.jp/rss/news/cat0.xml"},
				{Agency: "The Japan Times", URL: "https://www.japantimes.co.jp/feed/top"},
			},
			"India": {
				{Agency: "The Times of India", URL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms"},
				{Agency: "The Hindu", URL: "https://www.thehindu.com/feeder/default.rss"},
			},
			"Singapore": {
				{Agency: "The Straits Times", URL: "https://www.straitstimes.com/rss/latest-news"},
			},
			"Malaysia": {
				{Agency: "The Star", URL: "https://www.thestar.com.my/rss"},
			},
			"Indonesia": {
				{Agency: "Jakarta Post", URL: "https://www.thejakartapost.com/feed"},
			},
			"South Korea": {
				{Agency: "The Korea Herald", URL: "http://www.koreaherald.com/rss"},
			},
			"China": {
				{Agency: "China Daily", URL: "http://www.chinadaily.com.cn/rss/world_rss.xml"},
			},
			"Australia": {
				{Agency: "ABC News", URL: "https://www.abc.net.au/news/feed"},
			},
			"Canada": {
				{Agency: "CBC News", URL: "https://www.cbc.ca/webfeed/rss/rss-world"},
			},
			"Germany": {
				{Agency: "Deutsche Welle", URL: "https://rss.dw.com/xml/rss_en_world"},
			},
			"France": {
				{Agency: "France 24", URL: "https://www.france24.com/en/rss"},
			},
			"Brazil": {
				{Agency: "Folha de S.Paulo", URL: "https://www1.folha.uol.com.br/internacional/en/rss102.xml"},
			},
			"South Africa": {
				{Agency: "News24", URL: "https://www.news24.com/news24/rss"},
			},
			"Russia": {
				{Agency: "RT", URL: "https://www.rt.com/rss/news"},
			},
			"Nigeria": {
				{Agency: "The Punch", URL: "https://punchng.com/feed"},
			},
			"Mexico": {
				{Agency: "El Universal", URL: "https://www.eluniversal.com.mx/rss.xml"},
			},
			"Italy": {
				{Agency: "ANSA", URL: "https://www.ansa.it/sito/ansait_rss.xml"},
			},
			"Spain": {
				{Agency: "El País", URL: "https://feeds.elpais.com/rss"},
			},
			"Turkey": {
				{Agency: "Hurriyet Daily News", URL: "http://www.hurriyetdailynews.com/rss"},
			},
			"Egypt": {
				{Agency: "Ahram Online", URL: "http://english.ahram.org.eg/RSS.aspx"},
			},
			"Argentina": {
				{Agency: "La Nacional", URL: "https://www.lanacion.com.ar/rss/arcio/rss/"},
			},
		},
		Historical: map[string][]string{
			"UK": {
				"https://www.bbc.com/news/articles/cp00jze920eo",
			},
			"USA": {
				"https://www.cnn.com/2023/01/31/tennis/atp-alexander-zverev-domestic-abuse-spt-intl/index.html",
			},
			"India": {
				"https://timesofindia.indiatimes.com/toi/articleshow/121320973.cms",
			},
			"Qatar": {
				"https://www.aljazeera.com/news/liveblog/2025/5/30/live-israel-forces-new-displacement-in-north-gaza-as-strikes-intensify",
			},
		},
	}
}
