package rss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Закупка №0373100000125000001</title>
    <item>
      <title>Размещено извещение о проведении закупки</title>
      <description>&lt;div&gt;Номер закупки: 0373100000125000001&lt;br/&gt;Описание события: Размещено извещение&lt;/div&gt;</description>
      <pubDate>Sat, 01 Feb 2025 10:00:00 +0300</pubDate>
      <link>https://zakupki.gov.ru/notice/1</link>
    </item>
    <item>
      <title>Заявка участника отклонена</title>
      <description>&lt;div&gt;Описание события: Выявлено нарушение при рассмотрении заявки&lt;/div&gt;</description>
      <pubDate>Mon, 03 Feb 2025 12:00:00 +0300</pubDate>
      <link>https://zakupki.gov.ru/notice/2</link>
    </item>
    <item>
      <title>Внесены изменения</title>
      <description>&lt;div&gt;Описание события: Предупреждение о продлении срока подачи&lt;/div&gt;</description>
      <pubDate>Tue, 04 Feb 2025 09:00:00 +0300</pubDate>
      <link>https://zakupki.gov.ru/notice/3</link>
    </item>
  </channel>
</rss>`

func TestParseClassifiesEvents(t *testing.T) {
	events, err := Parse([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "Размещено извещение", events[0].Description)
	assert.Equal(t, LevelInfo, events[0].Level)
	assert.Equal(t, "low", events[0].Severity)

	assert.Equal(t, LevelViolation, events[1].Level)
	assert.Equal(t, "high", events[1].Severity)
	assert.Equal(t, "Выявлено нарушение при рассмотрении заявки", events[1].Description)

	assert.Equal(t, LevelRisk, events[2].Level)
	assert.Equal(t, "medium", events[2].Severity)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("not xml at all"))
	assert.Error(t, err)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "строка один\nстрока два",
		StripHTML("<b>строка&nbsp;один</b><br/>строка два"))
}

func TestDescriptionFallbackWithoutEventLine(t *testing.T) {
	const feed = `<rss version="2.0"><channel><item>
      <title>Событие</title>
      <description>&lt;p&gt;Просто текст без метки&lt;/p&gt;</description>
    </item></channel></rss>`

	events, err := Parse([]byte(feed))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Просто текст без метки", events[0].Description)
}
