package scenes

import (
	"github.com/decker502/bulletheaven/pkg/game"
	"github.com/decker502/bulletheaven/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// frameInput 一帧采集到的全部输入
type frameInput struct {
	snapshot game.InputSnapshot

	togglePause bool
	restart     bool

	// pressedChoice 数字键 1..9 选择的卡片下标，-1 表示未按下
	pressedChoice int
	// click 本帧左键点击的位置
	click   utils.Vec2
	clicked bool
}

// upgradeChoice 返回本帧选择的升级卡片
// 数字键优先，其次是点击命中的卡片
func (in frameInput) upgradeChoice(cardAt func(utils.Vec2) (int, bool)) (int, bool) {
	if in.pressedChoice >= 0 {
		return in.pressedChoice, true
	}
	if in.clicked {
		return cardAt(in.click)
	}
	return 0, false
}

var choiceKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// readInput 从键盘和鼠标读取输入
// WASD / 方向键移动，鼠标瞄准，左键或空格开火
func readInput(playerPos utils.Vec2) frameInput {
	var move utils.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y++
	}

	mx, my := ebiten.CursorPosition()
	cursor := utils.V(float64(mx), float64(my))
	target := cursor
	if target == playerPos {
		target = playerPos.Add(utils.V(1, 0))
	}

	in := frameInput{
		snapshot: game.InputSnapshot{
			Move:   move,
			Target: target,
			Fire:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
		},
		togglePause:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		restart:       inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		pressedChoice: -1,
	}

	for i, key := range choiceKeys {
		if inpututil.IsKeyJustPressed(key) {
			in.pressedChoice = i
			break
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.click = cursor
		in.clicked = true
	}
	return in
}
