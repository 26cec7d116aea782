package scenes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/decker502/bulletheaven/pkg/events"
	"github.com/decker502/bulletheaven/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 表现效果参数
const (
	floatingTextLifetime = 1.0  // 飘字存在时间（秒）
	floatingTextRise     = 40.0 // 飘字上升速度（像素/秒）
	announcementLifetime = 2.5
	maxAnnouncements     = 4
	explosionLifetime    = 0.4
	laserLifetime        = 0.15
	deathBurstLifetime   = 0.3
)

var (
	playerDamageColor = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	enemyDamageColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	explosionColor    = color.RGBA{R: 255, G: 140, B: 0, A: 200}
	laserColor        = color.RGBA{R: 255, G: 40, B: 200, A: 220}
	comboColor        = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	levelUpColor      = color.RGBA{R: 120, G: 255, B: 255, A: 255}
	unlockColor       = color.RGBA{R: 200, G: 160, B: 255, A: 255}
	abilityColor      = color.RGBA{R: 255, G: 255, B: 160, A: 255}
)

// floatingText 世界坐标中的飘字
type floatingText struct {
	text  string
	pos   utils.Vec2
	color color.RGBA
	age   float64
}

// announcement 屏幕上方的公告行
type announcement struct {
	text  string
	color color.RGBA
	age   float64
}

// ring 爆炸或死亡的扩散圆
type ring struct {
	pos      utils.Vec2
	radius   float64
	color    color.RGBA
	age      float64
	lifetime float64
}

// beam 激光束
type beam struct {
	from, to utils.Vec2
	age      float64
}

// effectLayer 由事件驱动的短暂视觉效果
// 只在表现层存在，模拟核心不依赖它
type effectLayer struct {
	texts         []floatingText
	announcements []announcement
	rings         []ring
	beams         []beam
}

func newEffectLayer() *effectLayer {
	return &effectLayer{}
}

// announcementKinds 以公告行显示的事件，经分发器在产生时同步送达
var announcementKinds = []events.Kind{
	events.KindAnnouncement,
	events.KindComboMilestone,
	events.KindLevelUp,
	events.KindUnlock,
}

// subscribe 向分发器订阅公告类事件
func (l *effectLayer) subscribe(d *events.Dispatcher) {
	for _, kind := range announcementKinds {
		d.Subscribe(kind, events.ListenerFunc(l.onAnnouncement))
	}
}

// onAnnouncement 公告类事件转为屏幕上方的公告行
func (l *effectLayer) onAnnouncement(e events.Event) {
	switch ev := e.(type) {
	case events.Announcement:
		l.announce(ev.Text, ev.Color)
	case events.ComboMilestone:
		l.announce(fmt.Sprintf("%d COMBO!", ev.Count), comboColor)
	case events.LevelUp:
		l.announce(fmt.Sprintf("LEVEL %d!", ev.Level), levelUpColor)
	case events.Unlock:
		l.announce(ev.Message, unlockColor)
	}
}

// consume 把每帧取出的事件转换为世界中的视觉效果
// 公告类事件由 onAnnouncement 处理，这里忽略
func (l *effectLayer) consume(evs []events.Event) {
	for _, e := range evs {
		switch ev := e.(type) {
		case events.DamageNumber:
			l.addDamageNumber(ev)
		case events.Explosion:
			l.rings = append(l.rings, ring{pos: ev.Pos, radius: ev.Radius, color: explosionColor, lifetime: explosionLifetime})
		case events.EnemyDeath:
			l.rings = append(l.rings, ring{pos: ev.Pos, radius: 20, color: ev.Color, lifetime: deathBurstLifetime})
		case events.Laser:
			l.beams = append(l.beams, beam{from: ev.From, to: ev.To})
		case events.PowerUpCollected:
			l.texts = append(l.texts, floatingText{text: "+" + ev.Type.String(), pos: ev.Pos, color: levelUpColor})
		case events.EnemyAbility:
			l.texts = append(l.texts, floatingText{text: abilityLabel(ev.Name), pos: ev.Pos, color: abilityColor})
		}
	}
}

func (l *effectLayer) addDamageNumber(ev events.DamageNumber) {
	c := enemyDamageColor
	label := fmt.Sprintf("%d", ev.Amount)
	switch {
	case ev.ToPlayer:
		c = playerDamageColor
		label = "-" + label
	case ev.Critical:
		c = critColor
		label += "!"
	}
	l.texts = append(l.texts, floatingText{text: label, pos: ev.Pos, color: c})
}

// announce 追加公告，超过上限时丢弃最旧的一条
func (l *effectLayer) announce(msg string, c color.RGBA) {
	if c.A == 0 {
		c = hudTextColor
	}
	l.announcements = append(l.announcements, announcement{text: msg, color: c})
	if len(l.announcements) > maxAnnouncements {
		l.announcements = l.announcements[len(l.announcements)-maxAnnouncements:]
	}
}

// update 推进效果计时，原地过滤掉过期项
func (l *effectLayer) update(deltaTime float64) {
	texts := l.texts[:0]
	for _, t := range l.texts {
		t.age += deltaTime
		t.pos.Y -= floatingTextRise * deltaTime
		if t.age < floatingTextLifetime {
			texts = append(texts, t)
		}
	}
	l.texts = texts

	anns := l.announcements[:0]
	for _, a := range l.announcements {
		a.age += deltaTime
		if a.age < announcementLifetime {
			anns = append(anns, a)
		}
	}
	l.announcements = anns

	rings := l.rings[:0]
	for _, r := range l.rings {
		r.age += deltaTime
		if r.age < r.lifetime {
			rings = append(rings, r)
		}
	}
	l.rings = rings

	beams := l.beams[:0]
	for _, b := range l.beams {
		b.age += deltaTime
		if b.age < laserLifetime {
			beams = append(beams, b)
		}
	}
	l.beams = beams
}

func (l *effectLayer) draw(screen *ebiten.Image, face text.Face) {
	for _, r := range l.rings {
		progress := r.age / r.lifetime
		c := fade(r.color, 1-progress)
		radius := float32(r.radius * (0.5 + 0.5*progress))
		vector.StrokeCircle(screen, float32(r.pos.X), float32(r.pos.Y), radius, 3, c, true)
	}
	for _, b := range l.beams {
		c := fade(laserColor, 1-b.age/laserLifetime)
		vector.StrokeLine(screen, float32(b.from.X), float32(b.from.Y), float32(b.to.X), float32(b.to.Y), 6, c, true)
	}
	for _, t := range l.texts {
		drawText(screen, face, t.text, t.pos.X, t.pos.Y, fade(t.color, 1-t.age/floatingTextLifetime))
	}
	for i, a := range l.announcements {
		w, _ := text.Measure(a.text, face, 0)
		x := float64(screen.Bounds().Dx())/2 - w/2
		drawText(screen, face, a.text, x, 90+float64(i)*18, fade(a.color, 1-a.age/announcementLifetime))
	}
}

// abilityLabel dash_charge -> DASH CHARGE
func abilityLabel(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

// fade 按比例降低透明度
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = utils.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

func drawText(screen *ebiten.Image, face text.Face, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
