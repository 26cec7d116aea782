package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/bulletheaven/pkg/simulation"
	"github.com/decker502/bulletheaven/pkg/types"
	"github.com/decker502/bulletheaven/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 升级卡片布局
const (
	cardWidth   = 220.0
	cardHeight  = 120.0
	cardSpacing = 30.0
)

var (
	hpBarBack      = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	hpBarFront     = color.RGBA{R: 220, G: 50, B: 50, A: 255}
	xpBarBack      = color.RGBA{R: 20, G: 40, B: 20, A: 255}
	xpBarFront     = color.RGBA{R: 80, G: 220, B: 80, A: 255}
	overlayColor   = color.RGBA{A: 170}
	cardColor      = color.RGBA{R: 40, G: 40, B: 70, A: 240}
	cardBorder     = color.RGBA{R: 140, G: 140, B: 220, A: 255}
	eliteRingColor = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	chargeColor    = color.RGBA{R: 255, G: 255, B: 255, A: 120}
)

// powerUpColors 地面道具配色
var powerUpColors = map[types.PowerUpType]color.RGBA{
	types.PowerUpSpeed:          {R: 0, G: 255, B: 255, A: 255},
	types.PowerUpDamage:         {R: 255, G: 80, B: 80, A: 255},
	types.PowerUpRapidFire:      {R: 255, G: 255, B: 0, A: 255},
	types.PowerUpShield:         {R: 80, G: 120, B: 255, A: 255},
	types.PowerUpHeal:           {R: 80, G: 255, B: 80, A: 255},
	types.PowerUpInvincibility:  {R: 255, G: 255, B: 255, A: 255},
	types.PowerUpMultiShot:      {R: 255, G: 128, B: 0, A: 255},
	types.PowerUpPiercing:       {R: 180, G: 0, B: 255, A: 255},
	types.PowerUpExplosiveShots: {R: 255, G: 60, B: 0, A: 255},
}

func (s *GameScene) arenaSize() (float64, float64) {
	cfg := s.sim.Config()
	return cfg.Player.ArenaWidth, cfg.Player.ArenaHeight
}

func (s *GameScene) drawGrid(screen *ebiten.Image) {
	w, h := s.arenaSize()
	for x := 0.0; x <= w; x += gridSpacing {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, gridColor, false)
	}
	for y := 0.0; y <= h; y += gridSpacing {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, gridColor, false)
	}
}

func (s *GameScene) drawPowerUps(screen *ebiten.Image, snap *simulation.Snapshot) {
	for _, p := range snap.PowerUps {
		c, ok := powerUpColors[p.Type]
		if !ok {
			c = hudTextColor
		}
		// 消失前闪烁
		if p.Remaining < 3 && int(snap.ElapsedTime*8)%2 == 0 {
			c = fade(c, 0.4)
		}
		fillSquare(screen, p.Pos, p.Size, c)
	}
}

func (s *GameScene) drawOrbs(screen *ebiten.Image, snap *simulation.Snapshot) {
	for _, o := range snap.Orbs {
		vector.DrawFilledCircle(screen, float32(o.Pos.X), float32(o.Pos.Y), float32(o.Size/2), orbColor, true)
	}
}

func (s *GameScene) drawEnemies(screen *ebiten.Image, snap *simulation.Snapshot) {
	for _, e := range snap.Enemies {
		c := e.Color
		if e.Stealthed || e.Phased {
			c = fade(c, 0.3)
		}
		fillSquare(screen, e.Pos, e.Size, c)

		if e.Elite {
			strokeSquare(screen, e.Pos, e.Size+6, eliteRingColor)
		}
		if e.ShieldActive {
			vector.StrokeCircle(screen, float32(e.Pos.X), float32(e.Pos.Y), float32(e.Size*0.8), 2, shieldColor, true)
		}
		if e.ChargingDash {
			vector.StrokeLine(screen, float32(e.Pos.X), float32(e.Pos.Y), float32(e.DashTarget.X), float32(e.DashTarget.Y), 1, chargeColor, true)
		}
		if e.ChargingLaser {
			vector.StrokeLine(screen, float32(e.Pos.X), float32(e.Pos.Y), float32(snap.Player.Pos.X), float32(snap.Player.Pos.Y), 1, laserColor, true)
		}

		if e.HP < e.MaxHP && e.MaxHP > 0 {
			barWidth := e.Size
			top := e.Pos.Sub(utils.V(barWidth/2, e.Size/2+8))
			drawBar(screen, top.X, top.Y, barWidth, 4, float64(e.HP)/float64(e.MaxHP), hpBarBack, hpBarFront)
		}
	}
}

func (s *GameScene) drawProjectiles(screen *ebiten.Image, snap *simulation.Snapshot) {
	for _, p := range snap.Projectiles {
		c := bulletColor
		switch {
		case p.Hostile:
			c = hostileColor
		case p.Critical:
			c = critColor
		}
		if p.IsMortar {
			vector.StrokeCircle(screen, float32(p.Target.X), float32(p.Target.Y), 12, 1, hostileColor, true)
		}
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size/2), c, true)
	}
}

func (s *GameScene) drawPlayer(screen *ebiten.Image, snap *simulation.Snapshot) {
	p := snap.Player
	if !p.Alive {
		return
	}
	c := playerColor
	if _, ok := p.Effects[types.PowerUpInvincibility]; ok && int(snap.ElapsedTime*10)%2 == 0 {
		c = fade(c, 0.5)
	}
	fillSquare(screen, p.Pos, p.Size, c)
	if _, ok := p.Effects[types.PowerUpShield]; ok {
		vector.StrokeCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size*0.9), 3, shieldColor, true)
	}
}

func (s *GameScene) drawHUD(screen *ebiten.Image, snap *simulation.Snapshot) {
	p := snap.Player
	w, _ := s.arenaSize()

	hpFraction := 0.0
	if p.MaxHP > 0 {
		hpFraction = float64(p.HP) / float64(p.MaxHP)
	}
	drawBar(screen, 16, 16, 240, 16, hpFraction, hpBarBack, hpBarFront)
	drawText(screen, s.face, fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP), 22, 18, hudTextColor)

	xpFraction := 0.0
	if p.XPToNextLevel > 0 {
		xpFraction = float64(p.XP) / float64(p.XPToNextLevel)
	}
	drawBar(screen, 16, 38, 240, 8, xpFraction, xpBarBack, xpBarFront)
	drawText(screen, s.face, fmt.Sprintf("Lv %d  %s L%d", p.Level, p.Weapon, p.WeaponLevel), 16, 50, hudTextColor)

	drawText(screen, s.face, snap.Wave.Info(), w/2-100, 16, hudTextColor)

	minutes := int(snap.ElapsedTime) / 60
	seconds := int(snap.ElapsedTime) % 60
	right := w - 180
	drawText(screen, s.face, fmt.Sprintf("Time %02d:%02d", minutes, seconds), right, 16, hudTextColor)
	drawText(screen, s.face, fmt.Sprintf("Kills %d", snap.Stats.EnemiesKilled), right, 32, hudTextColor)
	if snap.Combo.Count > 1 {
		drawText(screen, s.face, fmt.Sprintf("Combo x%d", snap.Combo.Count), right, 48, comboColor)
	}

	y := 70.0
	for _, t := range types.AllPowerUpTypes() {
		remaining, ok := p.Effects[t]
		if !ok {
			continue
		}
		drawText(screen, s.face, fmt.Sprintf("%s %.0fs", t, remaining), 16, y, powerUpColors[t])
		y += 16
	}
}

// cardRects 返回升级卡片的左上角坐标，水平居中排列
func (s *GameScene) cardRects(count int) []utils.Vec2 {
	w, h := s.arenaSize()
	total := float64(count)*cardWidth + float64(count-1)*cardSpacing
	left := w/2 - total/2
	top := h/2 - cardHeight/2
	rects := make([]utils.Vec2, count)
	for i := range rects {
		rects[i] = utils.V(left+float64(i)*(cardWidth+cardSpacing), top)
	}
	return rects
}

// upgradeCardAt 返回点击位置命中的卡片下标
func (s *GameScene) upgradeCardAt(p utils.Vec2) (int, bool) {
	for i, r := range s.cardRects(len(s.snapshot.PendingUpgrades)) {
		if p.X >= r.X && p.X <= r.X+cardWidth && p.Y >= r.Y && p.Y <= r.Y+cardHeight {
			return i, true
		}
	}
	return 0, false
}

func (s *GameScene) drawUpgradeCards(screen *ebiten.Image, snap *simulation.Snapshot) {
	w, h := s.arenaSize()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayColor, false)
	s.drawCenteredText(screen, fmt.Sprintf("LEVEL %d - choose an upgrade", snap.Player.Level), h/2-cardHeight, levelUpColor)

	for i, r := range s.cardRects(len(snap.PendingUpgrades)) {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), cardWidth, cardHeight, cardColor, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), cardWidth, cardHeight, 2, cardBorder, false)
		drawText(screen, s.face, fmt.Sprintf("[%d]", i+1), r.X+10, r.Y+10, cardBorder)
		drawText(screen, s.face, snap.PendingUpgrades[i].Title, r.X+10, r.Y+cardHeight/2-6, hudTextColor)
	}
}

func (s *GameScene) drawResults(screen *ebiten.Image, snap *simulation.Snapshot) {
	w, h := s.arenaSize()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), overlayColor, false)

	title, c := "GAME OVER", hostileColor
	if snap.State == types.RunVictory {
		title, c = "VICTORY!", eliteRingColor
	}
	s.drawCenteredText(screen, title, h/2-120, c)

	st := snap.Stats
	lines := []string{
		fmt.Sprintf("Time survived: %.0fs", st.TimeSurvived),
		fmt.Sprintf("Waves completed: %d (highest %d)", st.WavesCompleted, st.HighestWave),
		fmt.Sprintf("Level reached: %d", snap.Player.Level),
		fmt.Sprintf("Enemies killed: %d", st.EnemiesKilled),
		fmt.Sprintf("Damage dealt / taken: %d / %d", st.DamageDealt, st.DamageTaken),
		fmt.Sprintf("Accuracy: %.1f%% (%d crits)", st.Accuracy(), st.CriticalHits),
		fmt.Sprintf("Max combo: %d", st.MaxCombo),
		"Press R to play again",
	}
	for i, line := range lines {
		s.drawCenteredText(screen, line, h/2-80+float64(i)*20, hudTextColor)
	}
}

func (s *GameScene) drawCenteredText(screen *ebiten.Image, msg string, y float64, c color.Color) {
	w, _ := s.arenaSize()
	tw, _ := text.Measure(msg, s.face, 0)
	drawText(screen, s.face, msg, w/2-tw/2, y, c)
}

func fillSquare(screen *ebiten.Image, center utils.Vec2, size float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(center.X-size/2), float32(center.Y-size/2), float32(size), float32(size), c, false)
}

func strokeSquare(screen *ebiten.Image, center utils.Vec2, size float64, c color.Color) {
	vector.StrokeRect(screen, float32(center.X-size/2), float32(center.Y-size/2), float32(size), float32(size), 2, c, false)
}

// drawBar 绘制进度条，fraction 截断到 [0,1]
func drawBar(screen *ebiten.Image, x, y, w, h, fraction float64, back, front color.Color) {
	fraction = utils.Clamp(fraction, 0, 1)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), back, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*fraction), float32(h), front, false)
}
